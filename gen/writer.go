package gen

import (
	"os"

	"idlglue/report"
)

// WriteIfChanged writes a file only if its contents would change, so that
// regenerating unchanged glue does not touch file timestamps and trigger
// downstream rebuilds.
func WriteIfChanged(filename, content string) error {
	if old, err := os.ReadFile(filename); err == nil && string(old) == content {
		return nil
	}

	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		return err
	}

	report.ReportInfo("Writing %s", filename)
	return nil
}
