package settlement

import (
	"fmt"
	"strings"

	"gym-ledger/internal/storage"
)

const fileStamp = "20060102-150405"

type Kind string

const (
	KindTEF    Kind = "tef"
	KindReport Kind = "report"
	KindBill   Kind = "bill"
	KindNotice Kind = "notice"
)

// Artifact is one named file of a closing.
type Artifact struct {
	Name string
	Kind Kind
	Data []byte
}

// Artifacts renders every file of a closing: one transfer record per
// professional, the weekly report, then each bill and payment notice.
func Artifacts(c Closing) ([]Artifact, error) {
	stamp := c.ClosedAt.Format(fileStamp)
	var out []Artifact

	for _, s := range c.Settlements {
		data, err := storage.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encoding transfer record of %s: %w", s.ProviderNo, err)
		}
		out = append(out, Artifact{
			Name: fmt.Sprintf("%s-%s.tef", safe(s.ProviderName), s.ProviderNo),
			Kind: KindTEF,
			Data: data,
		})
	}

	out = append(out, Artifact{
		Name: fmt.Sprintf("weekly-sessions-report-%s.txt", stamp),
		Kind: KindReport,
		Data: []byte(c.Report.String()),
	})

	for _, b := range c.Bills {
		out = append(out, Artifact{
			Name: fmt.Sprintf("bill-%s-%s-%s.txt", safe(b.MemberName), b.MemberNo, stamp),
			Kind: KindBill,
			Data: []byte(RenderBill(b)),
		})
	}
	for _, n := range c.Notices {
		out = append(out, Artifact{
			Name: fmt.Sprintf("notice-%s-%s-%s.txt", safe(n.ProviderName), n.ProviderNo, stamp),
			Kind: KindNotice,
			Data: []byte(RenderNotice(n)),
		})
	}
	return out, nil
}

// safe keeps names usable as file name fragments.
func safe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', 0:
			return '_'
		}
		return r
	}, name)
}
