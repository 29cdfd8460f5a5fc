// Package scpi implements SCPI style hierarchical command paths. The
// colon joined path is built from the chain of named subsystems and the
// leaf mnemonic, collapsed to the SCPI short form.
package scpi

import (
	"fmt"
	"strings"
	"unicode"

	"labddk/pkg/driver"
)

type Protocol struct {
	transport driver.Transport
}

var _ driver.Protocol = (*Protocol)(nil)

func New(transport driver.Transport) *Protocol {
	return &Protocol{transport: transport}
}

func (p *Protocol) Read(ctx *driver.Context) (interface{}, error) {
	cmd := ShortForm(path(ctx, ctx.Reader)) + "?\n"
	if err := p.transport.Write([]byte(cmd)); err != nil {
		return nil, err
	}
	answer, err := p.transport.ReadLine()
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if len(answer) == 0 {
		return nil, driver.Driverf(cmd, "no answer")
	}
	return answer, nil
}

func (p *Protocol) Write(ctx *driver.Context) error {
	cmd := fmt.Sprintf("%s %s\n", ShortForm(path(ctx, ctx.Writer)), format(ctx.Value))
	return p.transport.Write([]byte(cmd))
}

// path joins the mnemonics of the traversed subsystems, root first, with
// the leaf mnemonic. Subsystems without a mnemonic are grouping nodes
// and do not contribute a path element.
func path(ctx *driver.Context, mnemonic string) string {
	var elems []string
	for i := len(ctx.Path) - 1; i >= 0; i-- {
		if m := ctx.Path[i].Mnemonic(); len(m) > 0 {
			elems = append(elems, m)
		}
	}
	elems = append(elems, mnemonic)
	return strings.Join(elems, ":")
}

// ShortForm collapses a long form mnemonic to the SCPI short form,
// keeping upper case letters and every non alphabetic character:
// "SOURce:VOLTage" becomes "SOUR:VOLT".
func ShortForm(longform string) string {
	var b strings.Builder
	for _, r := range longform {
		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// format renders a value for the wire; booleans map to the ON and OFF
// tokens the standard mandates.
func format(value interface{}) string {
	if b, ok := value.(bool); ok {
		if b {
			return "ON"
		}
		return "OFF"
	}
	return fmt.Sprintf("%v", value)
}
