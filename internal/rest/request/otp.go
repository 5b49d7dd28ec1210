package request

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type SendOTP struct {
	Email  string   `json:"email"`
	LangID LooseInt `json:"langId"`
}

type VerifyOTP struct {
	Email string      `json:"email"`
	Code  LooseString `json:"code"`
}

// LooseInt accepts 2, "2" or nothing. Unparseable input decodes to 0.
type LooseInt int

func (i *LooseInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		*i = 0
		return nil
	}
	*i = LooseInt(v)
	return nil
}

// LooseString accepts "123456" or 123456.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = LooseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = LooseString(num.String())
	return nil
}
