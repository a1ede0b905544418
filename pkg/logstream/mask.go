// Package logstream filters external tool output before it reaches the logs.
package logstream

import (
	"io"
	"sort"
	"strings"
)

const maskedStr = "****************"

// masker replaces secret values in everything written through it.
type masker struct {
	w io.Writer
	r *strings.Replacer
}

// NewMasker returns a writer that masks the values of secrets before writing to w.
// Multi line secrets are masked line by line. Values shorter than two
// characters are left alone. When there is nothing to mask w is returned as is.
func NewMasker(w io.Writer, secrets map[string]string) io.Writer {
	parts := secretParts(secrets)
	if len(parts) == 0 {
		return w
	}
	oldnew := make([]string, 0, 2*len(parts))
	for _, part := range parts {
		oldnew = append(oldnew, part, maskedStr)
	}
	return &masker{w: w, r: strings.NewReplacer(oldnew...)}
}

// secretParts returns the distinct maskable lines of all secrets, longest first
// so that a secret containing another one is masked as a whole.
func secretParts(secrets map[string]string) []string {
	seen := map[string]struct{}{}
	var parts []string
	for _, secret := range secrets {
		for _, part := range strings.Split(secret, "\n") {
			part = strings.TrimSpace(part)
			if len(part) < 2 {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			parts = append(parts, part)
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		if len(parts[i]) != len(parts[j]) {
			return len(parts[i]) > len(parts[j])
		}
		return parts[i] < parts[j]
	})
	return parts
}

// Write masks p and writes it to the wrapped writer. It reports len(p) on
// success since the masked output length differs from the input.
func (m *masker) Write(p []byte) (int, error) {
	if _, err := io.WriteString(m.w, m.r.Replace(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
