package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// UnitID is a radio's unit identifier on one trunking system. Found is false
// when the system or its Unit ID field is absent, which is distinct from a
// legitimate zero.
type UnitID struct {
	System string `json:"system"`
	Value  int64  `json:"value"`
	Found  bool   `json:"found"`
}

// Display renders the ID, or missing when it was not found.
func (u UnitID) Display(missing string) string {
	if !u.Found {
		return missing
	}
	return strconv.FormatInt(u.Value, 10)
}

// FileMetadata holds the per-document annotations.
type FileMetadata struct {
	Alias   string   `json:"alias"`
	UnitIDs []UnitID `json:"unit_ids"`
}

// UnitID returns the unit ID resolved for system.
func (m FileMetadata) UnitID(system string) UnitID {
	for _, u := range m.UnitIDs {
		if u.System == system {
			return u
		}
	}
	return UnitID{System: system}
}

// DeviceProfile is the model and device category derived from a serial.
type DeviceProfile struct {
	Model      string `json:"model"`
	DeviceType string `json:"device_type"`
}

// SerialPrefix maps a serial number prefix to a device profile.
type SerialPrefix struct {
	Prefix  string
	Profile DeviceProfile
}

// ProfileTable is the static serial-prefix lookup.
type ProfileTable []SerialPrefix

// Lookup returns the profile of the longest prefix matching serial.
func (t ProfileTable) Lookup(serial string) DeviceProfile {
	best := -1
	profile := DeviceProfile{Model: UnknownValue, DeviceType: UnknownValue}
	s := strings.ToUpper(serial)
	for _, p := range t {
		if len(p.Prefix) > best && strings.HasPrefix(s, strings.ToUpper(p.Prefix)) {
			best = len(p.Prefix)
			profile = p.Profile
		}
	}
	return profile
}

// FileInfo identifies one input document.
type FileInfo struct {
	Path    string        `json:"path"`
	Name    string        `json:"name"`
	Serial  string        `json:"serial"`
	Profile DeviceProfile `json:"profile"`
}

// NewFileInfo derives the file name and serial from path. The serial is the
// base name without its extension.
func NewFileInfo(path string, profiles ProfileTable) FileInfo {
	name := filepath.Base(path)
	serial := strings.TrimSuffix(name, filepath.Ext(name))
	return FileInfo{
		Path:    path,
		Name:    name,
		Serial:  serial,
		Profile: profiles.Lookup(serial),
	}
}
