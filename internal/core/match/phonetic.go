package match

import "strings"

// PhoneticKey folds a name into a consonant skeleton so that common spelling
// variants share a key. The rules run in this order over the normalized name:
//
//	strip vowels a e i o u
//	ph -> f
//	drop w and y
//	drop h unless it is next to a c
//	ck -> k
//	dge and gge -> je
//	drop gh unless preceded by p
//
// It is a deliberately small folding, not Metaphone. Short names collide and
// that is acceptable since the key is only one signal among several.
func PhoneticKey(name string) string {
	s := NormalizeName(name)
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "ph", "f")
	s = strings.Map(func(r rune) rune {
		if r == 'w' || r == 'y' {
			return -1
		}
		return r
	}, s)
	s = dropSilentH(s)
	s = strings.ReplaceAll(s, "ck", "k")
	s = strings.NewReplacer("dge", "je", "gge", "je").Replace(s)
	s = dropGH(s)
	return s
}

func dropGH(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if rs[i] == 'g' && i+1 < len(rs) && rs[i+1] == 'h' && (i == 0 || rs[i-1] != 'p') {
			i++
			continue
		}
		out = append(out, rs[i])
	}
	return string(out)
}

func dropSilentH(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i, r := range rs {
		if r == 'h' {
			afterC := i > 0 && rs[i-1] == 'c'
			beforeC := i+1 < len(rs) && rs[i+1] == 'c'
			if !afterC && !beforeC {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}
