package flowbus

// statusText maps the status byte of a status packet to a readable
// message. Code 0x00 is the only success.
var statusText = map[byte]string{
	0x00: "no error",
	0x01: "process claimed",
	0x02: "command error",
	0x03: "process error",
	0x04: "parameter error",
	0x05: "parameter type error",
	0x06: "parameter value error",
	0x07: "network not active",
	0x08: "time-out start character",
	0x09: "time-out serial line",
	0x0a: "hardware memory error",
	0x0b: "node number error",
	0x0c: "general communication error",
	0x0d: "read only parameter",
	0x0e: "error PC-communication",
	0x0f: "no RS232 connection",
	0x10: "PC out of memory",
	0x11: "write only parameter",
	0x12: "system configuration unknown",
	0x13: "no free node address",
	0x14: "wrong interface type",
	0x15: "error serial port connection",
	0x16: "error opening communication",
	0x17: "communication error",
	0x18: "error interface bus master",
	0x19: "timeout answer",
	0x1a: "no start character",
	0x1b: "error first digit",
	0x1c: "buffer overflow in host",
	0x1d: "buffer overflow",
	0x1e: "no answer found",
	0x1f: "error closing communication",
	0x20: "synchronisation error",
	0x21: "send error",
	0x22: "protocol error",
	0x23: "module buffer overflow",
}
