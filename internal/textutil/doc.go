// Package textutil sanitizes video titles for filesystem use.
package textutil
