package shelllink

import (
	"fmt"
	"strings"
)

// LinkFlags is the LinkFlags field of the shell link header
type LinkFlags uint32

// Link flags used by this package
const (
	HasLinkTargetIDList         LinkFlags = 1 << 0
	HasLinkInfo                 LinkFlags = 1 << 1
	HasName                     LinkFlags = 1 << 2
	HasRelativePath             LinkFlags = 1 << 3
	HasWorkingDir               LinkFlags = 1 << 4
	HasArguments                LinkFlags = 1 << 5
	HasIconLocation             LinkFlags = 1 << 6
	IsUnicode                   LinkFlags = 1 << 7
	ForceNoLinkInfo             LinkFlags = 1 << 8
	HasExpString                LinkFlags = 1 << 9
	HasDarwinID                 LinkFlags = 1 << 12
	EnableTargetMetadata        LinkFlags = 1 << 19
	PreferEnvironmentPath       LinkFlags = 1 << 25
	KeepLocalIDListForUNCTarget LinkFlags = 1 << 26
)

// Has reports whether all bits of f are set
func (l LinkFlags) Has(f LinkFlags) bool { return l&f == f }

var flagNames = []struct {
	flag LinkFlags
	name string
}{
	{HasLinkTargetIDList, "HasLinkTargetIDList"},
	{HasLinkInfo, "HasLinkInfo"},
	{HasName, "HasName"},
	{HasRelativePath, "HasRelativePath"},
	{HasWorkingDir, "HasWorkingDir"},
	{HasArguments, "HasArguments"},
	{HasIconLocation, "HasIconLocation"},
	{IsUnicode, "IsUnicode"},
	{ForceNoLinkInfo, "ForceNoLinkInfo"},
	{HasExpString, "HasExpString"},
	{HasDarwinID, "HasDarwinID"},
	{EnableTargetMetadata, "EnableTargetMetadata"},
	{PreferEnvironmentPath, "PreferEnvironmentPath"},
	{KeepLocalIDListForUNCTarget, "KeepLocalIDListForUNCTarget"},
}

// Names lists the named flags that are set
func (l LinkFlags) Names() []string {
	var names []string
	for _, f := range flagNames {
		if l.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}

// Extra data block signatures
const (
	SigEnvironment     uint32 = 0xA0000001
	SigConsole         uint32 = 0xA0000002
	SigTracker         uint32 = 0xA0000003
	SigConsoleFE       uint32 = 0xA0000004
	SigSpecialFolder   uint32 = 0xA0000005
	SigDarwin          uint32 = 0xA0000006
	SigIconEnvironment uint32 = 0xA0000007
	SigShim            uint32 = 0xA0000008
	SigPropertyStore   uint32 = 0xA0000009
	SigKnownFolder     uint32 = 0xA000000B
	SigVistaIDList     uint32 = 0xA000000C
)

var blockNames = map[uint32]string{
	SigEnvironment:     "Environment",
	SigConsole:         "Console",
	SigTracker:         "Tracker",
	SigConsoleFE:       "ConsoleFE",
	SigSpecialFolder:   "SpecialFolder",
	SigDarwin:          "Darwin",
	SigIconEnvironment: "IconEnvironment",
	SigShim:            "Shim",
	SigPropertyStore:   "PropertyStore",
	SigKnownFolder:     "KnownFolder",
	SigVistaIDList:     "VistaAndAboveIDList",
}

// BlockName names an extra data block signature
func BlockName(sig uint32) string {
	if name, ok := blockNames[sig]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", sig)
}

// Drive types of a VolumeID
const (
	DriveUnknown   uint32 = 0
	DriveRemovable uint32 = 2
	DriveFixed     uint32 = 3
	DriveRemote    uint32 = 4
	DriveCDROM     uint32 = 5
)

const (
	headerSize = 0x4C

	swShowNormal = 1

	// wnncNetLanman is the network provider type of SMB shares
	wnncNetLanman uint32 = 0x00020000

	netValidDevice  uint32 = 1
	netValidNetType uint32 = 2
)

// linkCLSID is 00021401-0000-0000-C000-000000000046 in its on-disk layout
var linkCLSID = [16]byte{0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}

// Header is the fixed-size shell link header minus its constant fields
type Header struct {
	Flags          LinkFlags
	FileAttributes uint32
	CreationTime   uint64
	AccessTime     uint64
	WriteTime      uint64
	FileSize       uint32
	IconIndex      int32
	ShowCommand    uint32
	HotKey         uint16
}

// VolumeID describes the volume a local target lives on
type VolumeID struct {
	DriveType    uint32
	SerialNumber uint32
	Label        string
}

// NetworkLink describes the share a network target lives on
type NetworkLink struct {
	Flags        uint32
	NetName      string
	DeviceName   string
	ProviderType uint32
}

// LinkInfo holds the information used to resolve the link target
type LinkInfo struct {
	Volume           *VolumeID
	LocalBasePath    string
	Network          *NetworkLink
	CommonPathSuffix string
}

// ExtraBlock is one extra data block. Data excludes the size and signature.
type ExtraBlock struct {
	Signature uint32
	Data      []byte
}

// Link is a decoded shell link
type Link struct {
	Header       Header
	IDList       [][]byte
	Info         *LinkInfo
	Name         string
	RelativePath string
	WorkingDir   string
	Arguments    string
	IconLocation string
	Extra        []ExtraBlock
}

// New returns a link pointing at target with default header values
func New(target string) *Link {
	l := &Link{
		Header: Header{
			ShowCommand: swShowNormal,
		},
	}
	l.SetTarget(target)
	return l
}

// Target returns the path the link resolves to. The LinkInfo is preferred,
// then the environment variable block, then the ID list.
func (l *Link) Target() string {
	if l.Info != nil {
		if t := l.Info.Target(); t != "" {
			return t
		}
	}
	if t := l.EnvironmentTarget(); t != "" {
		return t
	}
	return idListPath(l.IDList)
}

// Target joins the base path and the common suffix
func (li *LinkInfo) Target() string {
	switch {
	case li.LocalBasePath != "":
		return joinSuffix(li.LocalBasePath, li.CommonPathSuffix)
	case li.Network != nil && li.Network.NetName != "":
		return joinSuffix(li.Network.NetName, li.CommonPathSuffix)
	}
	return ""
}

func joinSuffix(base, suffix string) string {
	if suffix == "" {
		return base
	}
	if strings.HasSuffix(base, `\`) {
		return base + suffix
	}
	return base + `\` + suffix
}

// EnvironmentTarget returns the target stored in the environment variable
// block, unexpanded
func (l *Link) EnvironmentTarget() string {
	b := l.Block(SigEnvironment)
	if b == nil || len(b.Data) < 260 {
		return ""
	}
	if len(b.Data) >= 260+520 {
		if t := cstringUTF16(b.Data[260:780], 0); t != "" {
			return t
		}
	}
	return cstringANSI(b.Data[:260], 0)
}

// Block returns the first extra block with the given signature
func (l *Link) Block(sig uint32) *ExtraBlock {
	for i := range l.Extra {
		if l.Extra[i].Signature == sig {
			return &l.Extra[i]
		}
	}
	return nil
}

// staleBlocks are extra blocks that locate the old target. Windows would
// follow them back to it after a retarget. The property store is kept: it
// carries the AppUserModelID, and its target metadata is ignored once
// EnableTargetMetadata is cleared.
var staleBlocks = map[uint32]bool{
	SigEnvironment:   true,
	SigTracker:       true,
	SigSpecialFolder: true,
	SigDarwin:        true,
	SigKnownFolder:   true,
	SigVistaIDList:   true,
}

// SetTarget points the link at target. The ID list, the relative path and
// every extra block tied to the old target are dropped; names, arguments,
// working directory, icon and remaining blocks are kept.
func (l *Link) SetTarget(target string) {
	l.IDList = nil
	l.RelativePath = ""

	info := &LinkInfo{}
	if server, share, rest, ok := splitUNC(target); ok {
		info.Network = &NetworkLink{
			Flags:        netValidNetType,
			NetName:      `\\` + server + `\` + share,
			ProviderType: wnncNetLanman,
		}
		info.CommonPathSuffix = rest
	} else {
		vol := &VolumeID{DriveType: DriveFixed}
		if l.Info != nil && l.Info.Volume != nil && sameDrive(l.Info.LocalBasePath, target) {
			v := *l.Info.Volume
			vol = &v
		}
		info.Volume = vol
		info.LocalBasePath = target
	}
	l.Info = info

	kept := l.Extra[:0]
	for _, b := range l.Extra {
		if !staleBlocks[b.Signature] {
			kept = append(kept, b)
		}
	}
	l.Extra = kept

	l.Header.Flags &^= HasLinkTargetIDList | ForceNoLinkInfo | HasRelativePath |
		HasExpString | HasDarwinID | EnableTargetMetadata | PreferEnvironmentPath |
		KeepLocalIDListForUNCTarget
	l.Header.Flags |= HasLinkInfo
}

// splitUNC splits \\server\share\rest. ok is false for anything else.
func splitUNC(p string) (server, share, rest string, ok bool) {
	if !strings.HasPrefix(p, `\\`) || strings.HasPrefix(p, `\\?\`) || strings.HasPrefix(p, `\\.\`) {
		return "", "", "", false
	}
	parts := strings.SplitN(p[2:], `\`, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	if len(parts) == 3 {
		rest = strings.TrimRight(parts[2], `\`)
	}
	return parts[0], parts[1], rest, true
}

func sameDrive(a, b string) bool {
	return len(a) >= 2 && len(b) >= 2 && a[1] == ':' && b[1] == ':' && strings.EqualFold(a[:1], b[:1])
}
