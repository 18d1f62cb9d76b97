//go:build !unix

package deps

import "os"

func isExecutable(_ string, info os.FileInfo) bool {
	return info.Mode().IsRegular()
}
