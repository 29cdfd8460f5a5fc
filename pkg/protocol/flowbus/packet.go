package flowbus

import (
	"encoding/hex"
	"fmt"
	"strings"

	"labddk/pkg/driver"
	"labddk/pkg/utils/binutil"
)

// Command bytes of the bus protocol.
const (
	cmdStatus        = 0x00
	cmdWrite         = 0x01
	cmdWriteNoStatus = 0x02
	cmdRead          = 0x04
)

// Parameter index echoed back by the instrument in read replies.
const replyIndex = 1

// Security parameter on process 0: writing 0x40 lifts the write lock,
// 0x52 arms it again.
const (
	securityParam  = 10
	securityUnlock = 0x40
	securityRelock = 0x52
)

// Kind declares how a parameter value is encoded on the bus. Float and
// Long share the same wire type bits; the protocol cannot distinguish
// them at decode time and trusts the declared kind.
type Kind byte

const (
	Char Kind = iota // one byte
	Uint             // two bytes, big endian
	Float            // four bytes, IEEE 754
	Long             // four bytes, big endian
	String
)

func (k Kind) bits() byte {
	switch k {
	case Char:
		return 0x00
	case Uint:
		return 0x20
	case Float, Long:
		return 0x40
	default:
		return 0x60
	}
}

func (k Kind) size() int {
	switch k {
	case Char:
		return 1
	case Uint:
		return 2
	case Float, Long:
		return 4
	default:
		return 0 // length prefixed
	}
}

// Param is the protocol metadata attached to a flowbus Command through
// driver.WithMeta: the parameter number within its process, the value
// kind and whether writes require the lift security sequence.
type Param struct {
	Number  int
	Kind    Kind
	Secured bool
}

// chunk is one process/parameter/value triple of a packet; chained
// chunks share one packet.
type chunk struct {
	process byte
	chained bool
	param   Param
	value   interface{}
}

func processByte(number byte, chained bool) byte {
	b := number & 0x7f
	if chained {
		b |= 0x80
	}
	return b
}

func paramByte(p Param) byte {
	return p.Kind.bits() | byte(p.Number&0x1f)
}

// buildRead encodes a read request for one parameter. The reply repeats
// the process and carries the reply index.
func buildRead(node, process int, p Param) []byte {
	body := []byte{
		byte(node),
		cmdRead,
		processByte(byte(process), false),
		p.Kind.bits() | replyIndex,
		processByte(byte(process), false),
		paramByte(p),
	}
	if p.Kind == String {
		body = append(body, 0x00)
	}
	return append([]byte{byte(len(body))}, body...)
}

// buildWrite encodes a write request. Secured parameters are wrapped in
// the lift security sequence: the unlock byte chained in front of the
// payload, the relock byte appended after it.
func buildWrite(node, process int, p Param, value interface{}) ([]byte, error) {
	chunks := []chunk{{process: byte(process), param: p, value: value}}
	if p.Secured {
		chunks = []chunk{
			{process: 0, chained: true, param: Param{Number: securityParam, Kind: Char}, value: securityUnlock},
			{process: byte(process), chained: true, param: p, value: value},
			{process: 0, param: Param{Number: securityParam, Kind: Char}, value: securityRelock},
		}
	}

	body := []byte{byte(node), cmdWrite}
	for _, c := range chunks {
		encoded, err := encodeValue(c.param.Kind, c.value)
		if err != nil {
			return nil, err
		}
		body = append(body, processByte(c.process, c.chained), paramByte(c.param))
		body = append(body, encoded...)
	}
	return append([]byte{byte(len(body))}, body...), nil
}

func encodeValue(kind Kind, value interface{}) ([]byte, error) {
	if kind == String {
		s := fmt.Sprintf("%v", value)
		return append([]byte{byte(len(s))}, s...), nil
	}
	f, err := driver.AsFloat64(value)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Char:
		return []byte{byte(uint8(f))}, nil
	case Uint:
		return binutil.Uint16ToBytes(uint16(f)), nil
	case Long:
		return binutil.Uint32ToBytes(uint32(f)), nil
	default:
		buf := make([]byte, 4)
		binutil.WriteFloat32(buf, float32(f))
		return buf, nil
	}
}

func decodeValue(kind Kind, data []byte) (interface{}, int, error) {
	if kind == String {
		if len(data) < 1 || len(data) < 1+int(data[0]) {
			return nil, 0, fmt.Errorf("truncated string value")
		}
		n := int(data[0])
		return string(data[1 : 1+n]), 1 + n, nil
	}
	if len(data) < kind.size() {
		return nil, 0, fmt.Errorf("truncated value")
	}
	switch kind {
	case Char:
		return int64(data[0]), kind.size(), nil
	case Uint:
		return int64(binutil.ParseUint16BigEndian(data)), kind.size(), nil
	case Long:
		return int64(binutil.ParseUint32BigEndian(data)), kind.size(), nil
	default:
		return float64(binutil.ParseFloat32BigEndian(data)), kind.size(), nil
	}
}

// paramValue is one decoded process/parameter/value triple.
type paramValue struct {
	process byte
	number  byte
	value   interface{}
}

// message is a decoded bus packet: either a status report or a value
// carrying write message (instruments answer reads with writes).
type message struct {
	node        byte
	command     byte
	status      byte
	statusIndex byte
	values      []paramValue
}

// isSecurity reports whether a decoded triple belongs to the lift
// security sequence rather than the payload.
func (pv paramValue) isSecurity() bool {
	if pv.process&0x7f != 0 || pv.number != securityParam {
		return false
	}
	v, ok := pv.value.(int64)
	return ok && (v == securityUnlock || v == securityRelock)
}

// parse decodes a packet. Value widths within a write message depend on
// the parameter kind, which the wire only narrows down to a type class;
// the requested kind disambiguates.
func parse(packet []byte, kind Kind) (*message, error) {
	if len(packet) < 3 {
		return nil, fmt.Errorf("packet too short")
	}
	if int(packet[0]) != len(packet)-1 {
		return nil, fmt.Errorf("length byte %d does not match packet length %d", packet[0], len(packet)-1)
	}
	m := &message{node: packet[1], command: packet[2]}
	data := packet[3:]

	switch m.command {
	case cmdStatus:
		if len(data) != 2 {
			return nil, fmt.Errorf("malformed status packet")
		}
		m.status, m.statusIndex = data[0], data[1]
		return m, nil
	case cmdWrite, cmdWriteNoStatus:
		for len(data) >= 2 {
			pv := paramValue{process: data[0], number: data[1] & 0x1f}
			k := kind
			if pv.process&0x7f == 0 && pv.number == securityParam {
				k = Char
			}
			value, n, err := decodeValue(k, data[2:])
			if err != nil {
				return nil, err
			}
			pv.value = value
			m.values = append(m.values, pv)
			data = data[2+n:]
		}
		if len(data) != 0 {
			return nil, fmt.Errorf("trailing bytes in packet")
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unexpected command byte %#02x", m.command)
	}
}

// frame hex encodes a packet between the ':' start byte and the CR LF
// terminator.
func frame(packet []byte) string {
	return ":" + strings.ToUpper(hex.EncodeToString(packet)) + "\r\n"
}

func unframe(line string) ([]byte, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return nil, fmt.Errorf("missing ':' start byte in %q", line)
	}
	packet, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("bad hex payload in %q: %v", line, err)
	}
	return packet, nil
}
