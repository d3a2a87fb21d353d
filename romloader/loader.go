// This file is part of m4a2pret.
//
// m4a2pret is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m4a2pret is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m4a2pret.  If not, see <https://www.gnu.org/licenses/>.

package romloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/m4a2pret/m4a2pret/curated"
)

// Sentinal error patterns.
const (
	LoaderError = "romloader: %v"
	NotAROM     = "romloader: not a ROM (size %d)"
)

// the sizes of GBA cartridge images.
var validSizes = []int{
	8 * 1024 * 1024,
	16 * 1024 * 1024,
	32 * 1024 * 1024,
}

// Loader is used to specify the ROM image to extract from.
type Loader struct {
	// filename of the ROM image to load. can be a http or https URL
	Filename string

	// expected hash of the loaded ROM. empty string indicates that the hash is
	// unknown and need not be validated. after a load operation the value will
	// be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte

	// skip the size check. used by tests with small synthetic images
	AnySize bool
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns a shortened version of the Loader filename, suitable for
// naming output directories.
func (ld Loader) ShortName() string {
	n := path.Base(ld.Filename)
	return strings.TrimSuffix(n, path.Ext(n))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the ROM data. Filenames with a valid scheme will use that method to
// load the data. Currently supported schemes are HTTP and local files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoaderError, fmt.Sprintf("HTTP status (%s)", resp.Status))
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	case "file":
		fallthrough

	case "":
		data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	default:
		// a single letter scheme is a windows drive letter
		if len(scheme) == 1 {
			data, err = os.ReadFile(ld.Filename)
			if err != nil {
				return curated.Errorf(LoaderError, err)
			}
		} else {
			return curated.Errorf(LoaderError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
		}
	}

	if !ld.AnySize && !isValidSize(len(data)) {
		return curated.Errorf(NotAROM, len(data))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(LoaderError, "unexpected hash value")
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

func isValidSize(n int) bool {
	for _, s := range validSizes {
		if n == s {
			return true
		}
	}
	return false
}
