package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	m "unic.dev/pkg/unic/internal/model"
)

// ErrViewerNotFound reports that the external comparison viewer binary could
// not be located.
var ErrViewerNotFound = errors.New("comparison viewer not found")

// DiffViewer abstracts the external comparison viewer used by the review
// session.
type DiffViewer interface {
	// Open launches the viewer on two persisted output files. The launch
	// is fire-and-forget; Open does not wait for the viewer to close.
	Open(left, right m.Path) error

	// Setup performs a one-time platform-specific installation attempt
	// after a failed Open. It reports whether a retry is worthwhile.
	Setup() error
}

const bcompareDebFile = "bcompare-5.1.7.31736_amd64.deb"

// windowsBcompDir is the default Beyond Compare install location on Windows.
const windowsBcompDir = `C:\Program Files\Beyond Compare 4`

// BeyondCompareViewer locates and launches Beyond Compare.
type BeyondCompareViewer struct{}

// NewBeyondCompareViewer constructs a BeyondCompareViewer.
func NewBeyondCompareViewer() *BeyondCompareViewer {
	return &BeyondCompareViewer{}
}

// Open starts the viewer on the two files without waiting for it to exit.
func (v *BeyondCompareViewer) Open(left, right m.Path) error {
	name := viewerCommand()

	// #nosec G204 - fixed binary name, arguments are our own file paths.
	cmd := exec.Command(name, string(left), string(right))

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrViewerNotFound, name)
		}

		return fmt.Errorf("launching %s: %w", name, err)
	}

	// The child is left running; Release detaches it so the review loop
	// never waits on the viewer.
	return cmd.Process.Release()
}

// Setup attempts to make the viewer available: on Windows it looks for the
// default install location and extends PATH, elsewhere it downloads and
// installs the Beyond Compare package.
func (v *BeyondCompareViewer) Setup() error {
	if runtime.GOOS == "windows" {
		return setupWindows()
	}

	return setupLinux()
}

func viewerCommand() string {
	if runtime.GOOS == "windows" {
		return "bcomp.exe"
	}

	return "bcompare"
}

func setupWindows() error {
	candidate := filepath.Join(windowsBcompDir, "bcomp.exe")

	if _, err := os.Stat(candidate); err != nil {
		return fmt.Errorf("%w at %s; install it from https://www.scootersoftware.com/download.php or add it to PATH",
			ErrViewerNotFound, windowsBcompDir)
	}

	return os.Setenv("PATH", os.Getenv("PATH")+string(os.PathListSeparator)+windowsBcompDir)
}

func setupLinux() error {
	steps := []string{
		"wget https://www.scootersoftware.com/files/" + bcompareDebFile,
		"sudo apt update",
		"sudo apt install -y ./" + bcompareDebFile,
		"rm -f " + bcompareDebFile,
	}

	for _, step := range steps {
		slog.Info("viewer setup", "command", step)

		// #nosec G204 - fixed installation commands.
		out, err := exec.Command("sh", "-c", step).CombinedOutput()
		if err != nil {
			return fmt.Errorf("viewer setup step %q failed: %w: %s", step, err, out)
		}
	}

	return nil
}
