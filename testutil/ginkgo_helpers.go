package testutil

import (
	"fmt"
	"io/ioutil"
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func Byf(format string, args ...interface{}) {
	By(fmt.Sprintf(format, args...))
	fmt.Fprintln(GinkgoWriter)
}

// TmpDir creates temporary directory, and returns its path and cleanup function.
func TmpDir() (dir string, cleanup func()) {
	dir, err := ioutil.TempDir("", "go_test_tmp_")
	Expect(err).To(BeNil())
	cleanup = func() {
		err := os.RemoveAll(dir)
		Expect(err).To(BeNil())
	}
	return
}

// ExpectPanicWithType expects that f panics with value of the same type as expected.
func ExpectPanicWithType(f func(), expected interface{}) {
	ExpectWithOffset(1, f).To(PanicWith(BeAssignableToTypeOf(expected)))
}
