package shelllink

import (
	"bytes"
	"encoding/binary"

	"github.com/arthur-debert/retarget/pkg/errors"
)

var le = binary.LittleEndian

// reader walks a byte slice and records the first out-of-range access
type reader struct {
	b   []byte
	off int
	err error
}

func (r *reader) need(n int, what string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.off+n > len(r.b) {
		r.err = errors.Newf(errors.ErrShortcutFormat, "truncated %s at offset %d", what, r.off)
		return false
	}
	return true
}

func (r *reader) u16(what string) uint16 {
	if !r.need(2, what) {
		return 0
	}
	v := le.Uint16(r.b[r.off:])
	r.off += 2
	return v
}

func (r *reader) u32(what string) uint32 {
	if !r.need(4, what) {
		return 0
	}
	v := le.Uint32(r.b[r.off:])
	r.off += 4
	return v
}

func (r *reader) u64(what string) uint64 {
	if !r.need(8, what) {
		return 0
	}
	v := le.Uint64(r.b[r.off:])
	r.off += 8
	return v
}

func (r *reader) bytes(n int, what string) []byte {
	if !r.need(n, what) {
		return nil
	}
	v := r.b[r.off : r.off+n]
	r.off += n
	return v
}

// Parse decodes a shell link
func Parse(data []byte) (*Link, error) {
	r := &reader{b: data}
	l := &Link{}

	if size := r.u32("header"); r.err == nil && size != headerSize {
		return nil, errors.Newf(errors.ErrShortcutFormat, "unexpected header size 0x%X", size)
	}
	clsid := r.bytes(16, "header")
	if r.err == nil && !bytes.Equal(clsid, linkCLSID[:]) {
		return nil, errors.New(errors.ErrShortcutFormat, "not a shell link (bad CLSID)")
	}
	h := &l.Header
	h.Flags = LinkFlags(r.u32("header"))
	h.FileAttributes = r.u32("header")
	h.CreationTime = r.u64("header")
	h.AccessTime = r.u64("header")
	h.WriteTime = r.u64("header")
	h.FileSize = r.u32("header")
	h.IconIndex = int32(r.u32("header"))
	h.ShowCommand = r.u32("header")
	h.HotKey = r.u16("header")
	r.bytes(10, "header") // reserved
	if r.err != nil {
		return nil, r.err
	}

	if h.Flags.Has(HasLinkTargetIDList) {
		size := int(r.u16("id list"))
		l.IDList = parseIDList(r.bytes(size, "id list"))
	}

	if h.Flags.Has(HasLinkInfo) {
		start := r.off
		size := int(r.u32("link info"))
		r.off = start
		block := r.bytes(size, "link info")
		if r.err != nil {
			return nil, r.err
		}
		info, err := parseLinkInfo(block)
		if err != nil {
			return nil, err
		}
		l.Info = info
	}

	unicode := h.Flags.Has(IsUnicode)
	for _, s := range []struct {
		flag LinkFlags
		dst  *string
	}{
		{HasName, &l.Name},
		{HasRelativePath, &l.RelativePath},
		{HasWorkingDir, &l.WorkingDir},
		{HasArguments, &l.Arguments},
		{HasIconLocation, &l.IconLocation},
	} {
		if !h.Flags.Has(s.flag) {
			continue
		}
		count := int(r.u16("string data"))
		if unicode {
			*s.dst = decodeUTF16(r.bytes(count*2, "string data"))
		} else {
			*s.dst = decodeANSI(r.bytes(count, "string data"))
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	// Extra data runs until a terminal block (size < 4) or the end of the file.
	for r.off+4 <= len(r.b) {
		size := int(le.Uint32(r.b[r.off:]))
		if size < 4 {
			break
		}
		if size < 8 || r.off+size > len(r.b) {
			return nil, errors.Newf(errors.ErrShortcutFormat, "bad extra data block size %d at offset %d", size, r.off)
		}
		sig := le.Uint32(r.b[r.off+4:])
		data := make([]byte, size-8)
		copy(data, r.b[r.off+8:r.off+size])
		l.Extra = append(l.Extra, ExtraBlock{Signature: sig, Data: data})
		r.off += size
	}

	return l, nil
}

func parseIDList(b []byte) [][]byte {
	var items [][]byte
	off := 0
	for off+2 <= len(b) {
		size := int(le.Uint16(b[off:]))
		if size == 0 {
			break
		}
		if size < 2 || off+size > len(b) {
			break
		}
		item := make([]byte, size)
		copy(item, b[off:off+size])
		items = append(items, item)
		off += size
	}
	return items
}

func parseLinkInfo(b []byte) (*LinkInfo, error) {
	if len(b) < 0x1C {
		return nil, errors.New(errors.ErrShortcutFormat, "link info header too short")
	}
	hdrSize := le.Uint32(b[4:])
	flags := le.Uint32(b[8:])
	volOff := int(le.Uint32(b[12:]))
	localOff := int(le.Uint32(b[16:]))
	netOff := int(le.Uint32(b[20:]))
	suffixOff := int(le.Uint32(b[24:]))
	var localUniOff, suffixUniOff int
	if hdrSize >= 0x24 && len(b) >= 0x24 {
		localUniOff = int(le.Uint32(b[28:]))
		suffixUniOff = int(le.Uint32(b[32:]))
	}

	info := &LinkInfo{}
	if flags&1 != 0 {
		if localUniOff != 0 {
			info.LocalBasePath = cstringUTF16(b, localUniOff)
		} else {
			info.LocalBasePath = cstringANSI(b, localOff)
		}
		if volOff != 0 && volOff+0x10 <= len(b) {
			info.Volume = parseVolumeID(b[volOff:])
		}
	}
	if flags&2 != 0 && netOff != 0 && netOff+0x14 <= len(b) {
		info.Network = parseNetworkLink(b[netOff:])
	}
	if suffixUniOff != 0 {
		info.CommonPathSuffix = cstringUTF16(b, suffixUniOff)
	} else if suffixOff != 0 {
		info.CommonPathSuffix = cstringANSI(b, suffixOff)
	}
	return info, nil
}

func parseVolumeID(b []byte) *VolumeID {
	v := &VolumeID{
		DriveType:    le.Uint32(b[4:]),
		SerialNumber: le.Uint32(b[8:]),
	}
	labelOff := int(le.Uint32(b[12:]))
	if labelOff == 0x14 && len(b) >= 0x14 {
		v.Label = cstringUTF16(b, int(le.Uint32(b[16:])))
	} else {
		v.Label = cstringANSI(b, labelOff)
	}
	return v
}

func parseNetworkLink(b []byte) *NetworkLink {
	n := &NetworkLink{
		Flags:        le.Uint32(b[4:]),
		ProviderType: le.Uint32(b[16:]),
	}
	netNameOff := int(le.Uint32(b[8:]))
	deviceOff := int(le.Uint32(b[12:]))
	if netNameOff > 0x14 && len(b) >= 0x1C {
		n.NetName = cstringUTF16(b, int(le.Uint32(b[20:])))
		if n.Flags&netValidDevice != 0 {
			n.DeviceName = cstringUTF16(b, int(le.Uint32(b[24:])))
		}
		return n
	}
	n.NetName = cstringANSI(b, netNameOff)
	if n.Flags&netValidDevice != 0 {
		n.DeviceName = cstringANSI(b, deviceOff)
	}
	return n
}
