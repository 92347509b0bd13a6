package testhelpers

import (
	"os"
	"path"
	"testing"
)

var testPrefix = "openlib-uat"

// TempDir creates a scratch directory and returns it with a cleanup
// function.
func TempDir(t *testing.T) (string, func()) {
	tdir, err := os.MkdirTemp("", testPrefix)
	if err != nil {
		t.Fatal(err)
	}
	return tdir, func() {
		err = os.RemoveAll(tdir)
		if err != nil {
			t.Fatal(err)
		}
	}
}

// WriteTestFile drops contents into a new file under a scratch
// directory and returns the file's path with a cleanup function.
func WriteTestFile(t *testing.T, name, contents string) (string, func()) {
	tdir, cleanDir := TempDir(t)

	fpath := path.Join(tdir, name)
	if err := os.WriteFile(fpath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	return fpath, cleanDir
}

// ChdirTemp moves the test into a scratch directory and returns a
// function restoring the original working directory.
func ChdirTemp(t *testing.T) func() {
	tdir, cleanDir := TempDir(t)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	err = os.Chdir(tdir)
	if err != nil {
		t.Fatal(err)
	}

	return func() {
		err := os.Chdir(cwd)
		if err != nil {
			t.Fatal(err)
		}
		cleanDir()
	}
}
