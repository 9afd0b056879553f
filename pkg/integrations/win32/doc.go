// Package win32 reads and minimizes top-level windows on Windows desktops.
// It is empty on other platforms.
package win32
