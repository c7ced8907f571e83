package shelllink

import (
	"bytes"
	"strings"
)

// Shell item class types, masked with 0x70
const (
	itemVolume  = 0x20
	itemFile    = 0x30
	itemNetwork = 0x40
)

// beef0004 is the signature of the file entry extension carrying the long name
var beef0004 = []byte{0x04, 0x00, 0xEF, 0xBE}

// idListPath reconstructs a file system path from volume, network and file
// entry shell items. Items it does not understand (root folders, control
// panel entries, URIs) are skipped.
func idListPath(items [][]byte) string {
	var base string
	var names []string
	for _, item := range items {
		if len(item) < 3 {
			continue
		}
		typ := item[2]
		switch {
		case typ == 0x1F:
			// root folder (GUID), e.g. My Computer
		case typ&0x70 == itemVolume:
			base = strings.TrimRight(cstringANSI(item, 3), `\`) + `\`
		case typ&0x70 == itemNetwork:
			if len(item) > 5 {
				base = cstringANSI(item, 5)
			}
		case typ&0x70 == itemFile:
			if name := fileEntryName(item); name != "" {
				names = append(names, name)
			}
		}
	}
	if base == "" && len(names) == 0 {
		return ""
	}
	return joinSuffix(base, strings.Join(names, `\`))
}

// fileEntryName returns the long name of a file entry item when its
// extension block is present, otherwise the primary name.
func fileEntryName(item []byte) string {
	if long := longName(item); long != "" {
		return long
	}
	if len(item) <= 14 {
		return ""
	}
	if item[2]&0x04 != 0 {
		return cstringUTF16(item, 14)
	}
	return cstringANSI(item, 14)
}

func longName(item []byte) string {
	if len(item) <= 14 {
		return ""
	}
	sig := bytes.Index(item[14:], beef0004)
	if sig < 0 {
		return ""
	}
	ext := 14 + sig - 4
	if ext < 14 || ext+4 > len(item) {
		return ""
	}
	version := le.Uint16(item[ext+2:])
	var nameOff int
	switch {
	case version >= 9:
		nameOff = 46
	case version >= 8:
		nameOff = 42
	case version >= 7:
		nameOff = 38
	case version >= 3:
		nameOff = 20
	default:
		return ""
	}
	return cstringUTF16(item, ext+nameOff)
}

// FileEntryItem builds a file entry shell item with a primary name only.
// Directory entries have dir set.
func FileEntryItem(name string, dir bool) []byte {
	typ := byte(0x32)
	if dir {
		typ = 0x31
	}
	nameBytes := encodeANSI(name)
	size := 14 + len(nameBytes) + 1
	if size%2 != 0 {
		size++
	}
	item := make([]byte, size)
	le.PutUint16(item, uint16(size))
	item[2] = typ
	copy(item[14:], nameBytes)
	return item
}

// VolumeItem builds a volume shell item such as C:\
func VolumeItem(drive string) []byte {
	name := encodeANSI(strings.TrimRight(drive, `\`) + `\`)
	size := 3 + len(name) + 1
	item := make([]byte, size)
	le.PutUint16(item, uint16(size))
	item[2] = 0x2F
	copy(item[3:], name)
	return item
}
