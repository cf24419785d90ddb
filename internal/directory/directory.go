// Package directory maps service names to stable three-digit codes.
//
// The code depends only on the name: two professionals teaching a service
// with the same name share one code, and therefore one session code prefix.
// Each service still keeps its own seven-digit service code.
package directory

// Directory is not safe for concurrent use.
type Directory struct {
	next   func() string
	byName map[string]string
	byCode map[string]string
}

// New returns an empty directory drawing fresh codes from next.
func New(next func() string) *Directory {
	return &Directory{
		next:   next,
		byName: make(map[string]string),
		byCode: make(map[string]string),
	}
}

// CodeFor returns the code of name, allocating one on first sight. Names are
// compared exactly.
func (d *Directory) CodeFor(name string) string {
	if code, ok := d.byName[name]; ok {
		return code
	}
	code := d.next()
	d.byName[name] = code
	d.byCode[code] = name
	return code
}

// Lookup returns the code of name without allocating.
func (d *Directory) Lookup(name string) (string, bool) {
	code, ok := d.byName[name]
	return code, ok
}

func (d *Directory) NameFor(code string) (string, bool) {
	name, ok := d.byCode[code]
	return name, ok
}

func (d *Directory) Len() int {
	return len(d.byName)
}

// Snapshot copies both maps: name to code, then code to name.
func (d *Directory) Snapshot() (map[string]string, map[string]string) {
	names := make(map[string]string, len(d.byName))
	for k, v := range d.byName {
		names[k] = v
	}
	codes := make(map[string]string, len(d.byCode))
	for k, v := range d.byCode {
		codes[k] = v
	}
	return names, codes
}

// Restore replaces the content with persisted maps. A missing reverse map
// is rebuilt from the forward one.
func (d *Directory) Restore(names, codes map[string]string) {
	d.byName = make(map[string]string, len(names))
	d.byCode = make(map[string]string, len(names))
	for name, code := range names {
		d.byName[name] = code
		d.byCode[code] = name
	}
	for code, name := range codes {
		if _, ok := d.byCode[code]; !ok {
			d.byCode[code] = name
		}
	}
}
