package shelllink

import (
	"bytes"
)

type writer struct {
	bytes.Buffer
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	le.PutUint16(b[:], v)
	w.Write(b[:])
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	le.PutUint32(b[:], v)
	w.Write(b[:])
}

func (w *writer) u64(v uint64) {
	var b [8]byte
	le.PutUint64(b[:], v)
	w.Write(b[:])
}

// Encode serializes the link. Presence flags are derived from the fields and
// string data is always written as UTF-16.
func (l *Link) Encode() []byte {
	flags := l.Header.Flags &^ (HasLinkTargetIDList | HasLinkInfo | HasName | HasRelativePath |
		HasWorkingDir | HasArguments | HasIconLocation)
	flags |= IsUnicode
	if len(l.IDList) > 0 {
		flags |= HasLinkTargetIDList
	}
	if l.Info != nil {
		flags |= HasLinkInfo
	}
	strs := []struct {
		flag LinkFlags
		val  string
	}{
		{HasName, l.Name},
		{HasRelativePath, l.RelativePath},
		{HasWorkingDir, l.WorkingDir},
		{HasArguments, l.Arguments},
		{HasIconLocation, l.IconLocation},
	}
	for _, s := range strs {
		if s.val != "" {
			flags |= s.flag
		}
	}

	w := &writer{}
	h := l.Header
	w.u32(headerSize)
	w.Write(linkCLSID[:])
	w.u32(uint32(flags))
	w.u32(h.FileAttributes)
	w.u64(h.CreationTime)
	w.u64(h.AccessTime)
	w.u64(h.WriteTime)
	w.u32(h.FileSize)
	w.u32(uint32(h.IconIndex))
	w.u32(h.ShowCommand)
	w.u16(h.HotKey)
	w.Write(make([]byte, 10))

	if len(l.IDList) > 0 {
		size := 2
		for _, item := range l.IDList {
			size += len(item)
		}
		w.u16(uint16(size))
		for _, item := range l.IDList {
			w.Write(item)
		}
		w.u16(0)
	}

	if l.Info != nil {
		w.Write(l.Info.encode())
	}

	for _, s := range strs {
		if s.val == "" {
			continue
		}
		u := encodeUTF16(s.val)
		w.u16(uint16(len(u) / 2))
		w.Write(u)
	}

	for _, b := range l.Extra {
		w.u32(uint32(len(b.Data) + 8))
		w.u32(b.Signature)
		w.Write(b.Data)
	}
	w.u32(0)

	return w.Bytes()
}

func (li *LinkInfo) encode() []byte {
	unicode := !isASCII(li.LocalBasePath) || !isASCII(li.CommonPathSuffix)
	hdrSize := 0x1C
	if unicode {
		hdrSize = 0x24
	}

	var flags uint32
	body := &writer{}
	off := func() uint32 { return uint32(hdrSize + body.Len()) }

	var volOff, localOff, netOff, suffixOff, localUniOff, suffixUniOff uint32
	if li.LocalBasePath != "" {
		flags |= 1
		vol := li.Volume
		if vol == nil {
			vol = &VolumeID{DriveType: DriveFixed}
		}
		volOff = off()
		body.Write(vol.encode())
		localOff = off()
		body.Write(encodeANSI(li.LocalBasePath))
		body.WriteByte(0)
	}
	if li.Network != nil {
		flags |= 2
		netOff = off()
		body.Write(li.Network.encode())
	}
	suffixOff = off()
	body.Write(encodeANSI(li.CommonPathSuffix))
	body.WriteByte(0)
	if unicode {
		if li.LocalBasePath != "" {
			localUniOff = off()
			body.Write(encodeUTF16(li.LocalBasePath))
			body.u16(0)
		}
		suffixUniOff = off()
		body.Write(encodeUTF16(li.CommonPathSuffix))
		body.u16(0)
	}

	w := &writer{}
	w.u32(uint32(hdrSize + body.Len()))
	w.u32(uint32(hdrSize))
	w.u32(flags)
	w.u32(volOff)
	w.u32(localOff)
	w.u32(netOff)
	w.u32(suffixOff)
	if unicode {
		w.u32(localUniOff)
		w.u32(suffixUniOff)
	}
	w.Write(body.Bytes())
	return w.Bytes()
}

func (v *VolumeID) encode() []byte {
	label := encodeANSI(v.Label)
	w := &writer{}
	w.u32(uint32(0x10 + len(label) + 1))
	w.u32(v.DriveType)
	w.u32(v.SerialNumber)
	w.u32(0x10)
	w.Write(label)
	w.WriteByte(0)
	return w.Bytes()
}

// encode writes the CommonNetworkRelativeLink. Names outside ASCII get the
// extended 0x1C header with UTF-16 copies next to the code page ones.
func (n *NetworkLink) encode() []byte {
	unicode := !isASCII(n.NetName) || !isASCII(n.DeviceName)
	hdrSize := 0x14
	if unicode {
		hdrSize = 0x1C
	}

	flags := n.Flags &^ netValidDevice
	if n.DeviceName != "" {
		flags |= netValidDevice
	}

	body := &writer{}
	off := func() uint32 { return uint32(hdrSize + body.Len()) }

	netOff := off()
	body.Write(encodeANSI(n.NetName))
	body.WriteByte(0)
	var deviceOff uint32
	if n.DeviceName != "" {
		deviceOff = off()
		body.Write(encodeANSI(n.DeviceName))
		body.WriteByte(0)
	}

	var netUniOff, deviceUniOff uint32
	if unicode {
		netUniOff = off()
		body.Write(encodeUTF16(n.NetName))
		body.u16(0)
		if n.DeviceName != "" {
			deviceUniOff = off()
			body.Write(encodeUTF16(n.DeviceName))
			body.u16(0)
		}
	}

	w := &writer{}
	w.u32(uint32(hdrSize + body.Len()))
	w.u32(flags)
	w.u32(netOff)
	w.u32(deviceOff)
	w.u32(n.ProviderType)
	if unicode {
		w.u32(netUniOff)
		w.u32(deviceUniOff)
	}
	w.Write(body.Bytes())
	return w.Bytes()
}
