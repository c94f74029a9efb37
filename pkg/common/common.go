// 14 Oct 2026

// Package common holds the few things shared by the commands and
// their tests: exit codes, the program identity and a temp file helper.
package common

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// Version of the jsd programs.
const Version = "0.1.0"

// Prog is who we are. It is built once in main and handed to whatever
// has to print a banner or usage message.
type Prog struct {
	Name    string
	Version string
}

// NewProg takes argv[0] and strips the directory part.
func NewProg(argv0 string) Prog {
	return Prog{Name: path.Base(argv0), Version: Version}
}

// String gives the form used for -v, "jsd V0.1.0".
func (p Prog) String() string { return p.Name + " V" + p.Version }

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	fTmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", errors.Wrap(err, "tempfile fail")
	}
	defer fTmp.Close()
	if _, err := io.WriteString(fTmp, s); err != nil {
		return "", errors.Wrapf(err, "writing string to temp file %v", fTmp.Name())
	}
	return fTmp.Name(), nil
}
