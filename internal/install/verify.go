package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/conn-castle/ptsetup/internal/messages"
)

// modulePackages maps import names to the pip package that provides them
// where the two differ.
var modulePackages = map[string]string{
	"win32gui": "pywin32",
	"win32api": "pywin32",
	"win32con": "pywin32",
	"cv2":      "opencv-python",
	"PIL":      "pillow",
	"yaml":     "PyYAML",
}

// PackageFor returns the pip package that provides module. Unknown modules
// are assumed to share the package name of their top-level import.
func PackageFor(module string) string {
	top, _, _ := strings.Cut(module, ".")
	if pkg, ok := modulePackages[top]; ok {
		return pkg
	}
	return top
}

// MissingModulesError lists the modules that failed to import.
type MissingModulesError struct {
	Pip     string
	Modules []string
}

// Packages returns the distinct pip packages for the missing modules, in order.
func (e *MissingModulesError) Packages() []string {
	seen := make(map[string]bool, len(e.Modules))
	var pkgs []string
	for _, module := range e.Modules {
		pkg := PackageFor(module)
		if seen[pkg] {
			continue
		}
		seen[pkg] = true
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

func (e *MissingModulesError) Error() string {
	names := make([]string, 0, len(e.Modules))
	for _, module := range e.Modules {
		names = append(names, fmt.Sprintf(messages.InstallMissingModuleFmt, module, PackageFor(module)))
	}
	pip := e.Pip
	if pip == "" {
		pip = "pip"
	}
	return fmt.Sprintf(messages.InstallMissingModulesFmt, strings.Join(names, ", "), pip, strings.Join(e.Packages(), " "))
}

func (e *MissingModulesError) Unwrap() error { return ErrVerifyFailed }

// Verify imports each module in its own interpreter process so that one
// failure does not hide the rest. Every module that fails is reported in a
// *MissingModulesError.
func (i *Installer) Verify(ctx context.Context, modules []string) error {
	if len(modules) == 0 {
		return fmt.Errorf("%w: %s", ErrVerifyFailed, messages.InstallNoImports)
	}
	var missing []string
	for _, module := range modules {
		outcome, err := i.sys.Stream(ctx, i.stdout, i.stderr, i.python, "-c", ImportStatement(module))
		if err != nil {
			return i.check(ctx, ErrVerifyFailed, outcome, err)
		}
		if !outcome.Success() {
			missing = append(missing, module)
		}
	}
	if len(missing) > 0 {
		return &MissingModulesError{Pip: i.pip, Modules: missing}
	}
	return nil
}

// ImportStatement returns the Python source that imports module.
func ImportStatement(module string) string {
	return "import " + module
}
