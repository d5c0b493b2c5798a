/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfFile loads the optional conffile named in the master handshake
// (spec.md §4.1 bootstrap step 1 / §3's Session.ConfFile) from confdir.
// A missing conffile is not an error: the session falls back to
// defaults, matching the original's tolerance of an empty conffile.
type ConfFile struct {
	v *viper.Viper
}

// LoadConfFile reads confdir/conffile if it exists. name may be empty,
// in which case LoadConfFile returns an empty, watch-less ConfFile.
func LoadConfFile(confdir, name string) (*ConfFile, error) {
	v := viper.New()
	c := &ConfFile{v: v}

	if name == "" {
		return c, nil
	}

	v.SetConfigName(fileBase(name))
	v.SetConfigType(fileExt(name))
	v.AddConfigPath(confdir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return c, nil
		}
		return nil, fmt.Errorf("config: read %s/%s: %w", confdir, name, err)
	}

	return c, nil
}

// GetString reads a top-level key, e.g. "Load" or "Logon" (the two
// optional startup script paths of spec.md §4.1 step 8).
func (c *ConfFile) GetString(key string) string {
	if c == nil || c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

func fileBase(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}

func fileExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return "yaml"
	}
	return ext[1:]
}
