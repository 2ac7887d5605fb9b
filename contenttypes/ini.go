// Package contenttypes reads content type settings from an ini file.
//
// Each content type has its own section:
//
//	[article]
//	grant_tab_enabled = true
package contenttypes

import (
	"gopkg.in/ini.v1"
)

const keyGrantTab = "grant_tab_enabled"

// IniStore implements core.ContentTypeDB.
type IniStore struct {
	file *ini.File
}

// Load reads an ini file. A missing file is an error.
func Load(filename string) (*IniStore, error) {
	file, err := ini.Load(filename)
	if err != nil {
		return nil, err
	}
	return &IniStore{file: file}, nil
}

// Parse reads ini data from a byte slice.
func Parse(data []byte) (*IniStore, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	return &IniStore{file: file}, nil
}

// GrantTabEnabled returns false if the content type has no section or the key is missing.
func (s *IniStore) GrantTabEnabled(contentType string) (bool, error) {
	if contentType == "" || !s.file.HasSection(contentType) {
		return false, nil
	}
	key := s.file.Section(contentType).Key(keyGrantTab)
	if key.String() == "" {
		return false, nil
	}
	return key.Bool()
}

// Types returns the names of all configured content types.
func (s *IniStore) Types() []string {
	var types []string
	for _, name := range s.file.SectionStrings() {
		if name != ini.DefaultSection {
			types = append(types, name)
		}
	}
	return types
}
