package entity

import (
	"path"
	"sort"
	"strings"

	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/scan"
)

// Components lists UI component names found under components/ directories,
// sorted and unique. Laravel projects contribute Blade and Livewire
// components.
func Components(res *scan.Result, id framework.ID) []string {
	exts := map[string]bool{".tsx": true, ".jsx": true, ".vue": true}
	if id == framework.Laravel || id == framework.Unknown {
		exts[".php"] = true
	}

	set := map[string]bool{}
	for _, f := range res.Files {
		if !exts[f.Ext()] || !inComponentDir(f.Path) || skipFile(f.Path) {
			continue
		}
		name := strings.TrimSuffix(f.Base(), path.Ext(f.Base()))
		name = strings.TrimSuffix(name, ".blade")
		if name == "index" {
			name = path.Base(path.Dir(f.Path))
		}
		set[name] = true
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func inComponentDir(p string) bool {
	for _, seg := range strings.Split(path.Dir(p), "/") {
		if strings.EqualFold(seg, "components") || seg == "Livewire" {
			return true
		}
	}
	return false
}
