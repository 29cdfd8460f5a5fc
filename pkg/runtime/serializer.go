package runtime

import (
	"strconv"
	"time"
)

func (t *Time) UnmarshalJSON(bytes []byte) error {
	raw, err := strconv.Unquote(string(bytes))
	if err != nil {
		return err
	}
	ft, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	*t = (Time)(ft)
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	ft := (time.Time)(t).Format(time.RFC3339Nano)
	return []byte(strconv.Quote(ft)), nil
}
