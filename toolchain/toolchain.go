// Package toolchain invokes the external nasm/ld collaborator that
// turns generated assembly text into a runnable ELF binary: two
// subprocess steps, assemble then link, per spec §4.6. Neither step
// interprets its subprocess's output; a non-zero exit is wrapped into
// a *cerrors.Error carrying the captured combined stdout/stderr, so a
// failing nasm/ld invocation's diagnostics reach the caller instead of
// being discarded, the way beryllium's RunCommand trait does.
package toolchain

import (
	"os/exec"
	"strings"

	"github.com/gopherlang/minic/cerrors"
)

// Assemble runs `nasm -felf64 asmPath`, producing an object file next
// to it with the same stem and a .o extension.
func Assemble(asmPath string) error {
	return run("nasm", "-felf64", asmPath)
}

// Link runs `ld objPath -o outPath`, producing the final executable.
func Link(objPath, outPath string) error {
	return run("ld", objPath, "-o", outPath)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		wrapped := cerrors.Wrap(cerrors.SubprocessError, err, "%s failed", strings.Join(append([]string{name}, args...), " "))
		wrapped.Output = string(out)
		return wrapped
	}
	return nil
}
