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

package romloader_test

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/romloader"
	"github.com/m4a2pret/m4a2pret/test"
)

func TestShortName(t *testing.T) {
	ld := romloader.NewLoader("/roms/pokefirered.gba")
	test.ExpectEquality(t, ld.ShortName(), "pokefirered")

	ld = romloader.NewLoader("https://example.com/roms/ruby.gba")
	test.ExpectEquality(t, ld.ShortName(), "ruby")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "test.gba")
	data := make([]byte, 8*1024*1024)
	data[0] = 0x2e
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))

	ld := romloader.NewLoader(fn)
	test.ExpectFailure(t, ld.HasLoaded())
	test.DemandSuccess(t, ld.Load())
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, len(ld.Data), len(data))
	test.ExpectEquality(t, ld.Hash, fmt.Sprintf("%x", sha1.Sum(data)))
}

func TestSizeCheck(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "small.gba")
	test.DemandSuccess(t, os.WriteFile(fn, make([]byte, 1000), 0o644))

	ld := romloader.NewLoader(fn)
	err := ld.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, romloader.NotAROM))
	test.ExpectFailure(t, ld.HasLoaded())

	ld = romloader.NewLoader(fn)
	ld.AnySize = true
	test.ExpectSuccess(t, ld.Load())
}

func TestHashMismatch(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "test.gba")
	test.DemandSuccess(t, os.WriteFile(fn, make([]byte, 16), 0o644))

	ld := romloader.NewLoader(fn)
	ld.AnySize = true
	ld.Hash = "0000"
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, romloader.LoaderError))
}

func TestMissingFile(t *testing.T) {
	ld := romloader.NewLoader(filepath.Join(t.TempDir(), "missing.gba"))
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, romloader.LoaderError))
	test.ExpectSuccess(t, curated.Has(err, romloader.LoaderError))
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rom.gba" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte{1, 2, 3, 4})
	}))
	defer srv.Close()

	ld := romloader.NewLoader(srv.URL + "/rom.gba")
	ld.AnySize = true
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, len(ld.Data), 4)

	ld = romloader.NewLoader(srv.URL + "/other.gba")
	ld.AnySize = true
	test.ExpectFailure(t, ld.Load())
}
