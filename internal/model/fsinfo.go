// SPDX-License-Identifier: MIT
//
// FSInfo links a parsed declaration back to its physical source on disk so
// that compile-stage errors can report which file a broken declaration lives
// in, not just what is wrong with it.
package model

type FSInfo struct {
	FilePath string
}

func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}
