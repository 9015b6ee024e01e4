package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleString accepts a JSON string or number. Providers are not consistent about IDs.
type FlexibleString string

func (fs *FlexibleString) UnmarshalJSON(data []byte) error {
	var s string
	var i int64
	var f float64

	if string(data) == "null" {
		*fs = ""
		return nil
	}

	if err := json.Unmarshal(data, &s); err == nil {
		*fs = FlexibleString(s)
		return nil
	}

	if err := json.Unmarshal(data, &i); err == nil {
		*fs = FlexibleString(strconv.FormatInt(i, 10))
		return nil
	}

	if err := json.Unmarshal(data, &f); err == nil {
		*fs = FlexibleString(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("unable to parse %s as FlexibleString", string(data))
}

func (fs FlexibleString) String() string {
	return string(fs)
}
