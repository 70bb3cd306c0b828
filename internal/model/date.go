package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// looseTime decodes the dates clients send: RFC 3339, plain dates such as
// "1990-01-01" from date inputs, other common layouts, and epoch
// milliseconds.  Values without a zone are read as UTC.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var ms int64
		if json.Unmarshal(b, &ms) != nil {
			return fmt.Errorf("date: want a string or epoch milliseconds, got %s", b)
		}
		*t = looseTime(time.UnixMilli(ms).UTC())
		return nil
	}
	v, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if v, err = dateparse.ParseIn(s, time.UTC); err != nil {
			return fmt.Errorf("date %q: %w", s, err)
		}
	}
	*t = looseTime(v.UTC())
	return nil
}

func (t *looseTime) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

// setTime copies a decoded date into dst when the field was sent.
func setTime(dst *time.Time, t *looseTime) {
	if t != nil {
		*dst = time.Time(*t)
	}
}

// setTimePtr is setTime for optional fields.
func setTimePtr(dst **time.Time, t *looseTime) {
	if t != nil {
		*dst = t.ptr()
	}
}

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		DateOfBirth *looseTime `json:"dateOfBirth"`
		Joined      *looseTime `json:"joined"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTimePtr(&u.DateOfBirth, aux.DateOfBirth)
	setTime(&u.Joined, aux.Joined)
	return nil
}

func (p *UserPatch) UnmarshalJSON(b []byte) error {
	type plain UserPatch
	aux := struct {
		*plain
		DateOfBirth *looseTime `json:"dateOfBirth"`
		Joined      *looseTime `json:"joined"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTimePtr(&p.DateOfBirth, aux.DateOfBirth)
	setTimePtr(&p.Joined, aux.Joined)
	return nil
}

func (t *Tuit) UnmarshalJSON(b []byte) error {
	type plain Tuit
	aux := struct {
		*plain
		Posted *looseTime `json:"posted"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTime(&t.Posted, aux.Posted)
	return nil
}

func (p *TuitPatch) UnmarshalJSON(b []byte) error {
	type plain TuitPatch
	aux := struct {
		*plain
		Posted *looseTime `json:"posted"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTimePtr(&p.Posted, aux.Posted)
	return nil
}

func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	aux := struct {
		*plain
		SentOn *looseTime `json:"sentOn"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTime(&m.SentOn, aux.SentOn)
	return nil
}

func (p *MessagePatch) UnmarshalJSON(b []byte) error {
	type plain MessagePatch
	aux := struct {
		*plain
		SentOn *looseTime `json:"sentOn"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	setTimePtr(&p.SentOn, aux.SentOn)
	return nil
}
