package driver

import (
	"encoding/json"
	"fmt"
)

type Access int8

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
)

var AccessToString = map[Access]string{
	ReadWrite: "rw",
	ReadOnly:  "r",
	WriteOnly: "w",
}

var StringToAccess = map[string]Access{
	"rw": ReadWrite,
	"r":  ReadOnly,
	"w":  WriteOnly,
}

func (a Access) String() string {
	if s, ok := AccessToString[a]; ok {
		return s
	}
	return fmt.Sprintf("access(%d)", a)
}

func (a Access) MarshalJSON() ([]byte, error) {
	if s, ok := AccessToString[a]; ok {
		return json.Marshal(s)
	}
	return nil, fmt.Errorf("unknown access mode %d", a)
}

func (a *Access) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}

	v, ok := StringToAccess[s]
	if !ok {
		return fmt.Errorf("unknown access mode %s", s)
	}
	*a = v
	return nil
}
