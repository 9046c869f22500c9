package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/diarybook/internal/index"
)

// OpenEntry opens the diary at the header line of the indexed entry with
// the given 1-based id.
func OpenEntry(db *index.DB, diaryPath string, entryID int) error {
	e, err := db.GetEntry(entryID)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return fmt.Errorf("entry not found: %d", entryID)
	}
	return OpenAt(diaryPath, e.LineNumber)
}

// OpenAt opens path in $EDITOR (less when unset) at line.
func OpenAt(path string, line int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if line < 1 {
		line = 1
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, path, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "emacs") || strings.Contains(editor, "nano") ||
		strings.Contains(editor, "less") || strings.Contains(editor, "micro"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
