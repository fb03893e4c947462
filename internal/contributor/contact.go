package contributor

import (
	"encoding/json"
	"errors"
	"slices"
)

// ContactKind tells the two Contact shapes apart.
type ContactKind int

const (
	ContactSingle ContactKind = iota
	ContactMultiple
)

// String returns a string representation of the contact kind.
func (k ContactKind) String() string {
	switch k {
	case ContactSingle:
		return "single"
	case ContactMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// Contact is either a single email or an ordered list of unique emails.
// Values are immutable: With returns a new Contact and never changes the receiver.
type Contact struct {
	kind   ContactKind
	emails []string
}

// SingleContact returns a Contact holding one email.
func SingleContact(email string) Contact {
	return Contact{kind: ContactSingle, emails: []string{email}}
}

// MultipleContact returns a list Contact of emails in first-seen order, duplicates dropped.
func MultipleContact(emails ...string) Contact {
	list := make([]string, 0, len(emails))
	for _, e := range emails {
		if !slices.Contains(list, e) {
			list = append(list, e)
		}
	}
	return Contact{kind: ContactMultiple, emails: list}
}

// Kind returns the contact shape.
func (c Contact) Kind() ContactKind {
	return c.kind
}

// IsMultiple returns true once the contact has been upgraded to a list.
func (c Contact) IsMultiple() bool {
	return c.kind == ContactMultiple
}

// Emails returns a copy of the emails in first-seen order.
func (c Contact) Emails() []string {
	return slices.Clone(c.emails)
}

// Primary returns the first-seen email, or "" for an empty list.
func (c Contact) Primary() string {
	if len(c.emails) == 0 {
		return ""
	}
	return c.emails[0]
}

// Has reports whether email is one of the contact's emails.
func (c Contact) Has(email string) bool {
	return slices.Contains(c.emails, email)
}

// With returns the contact after observing email.
// Single(e) with a different email becomes Multiple([e, email]); a list gains
// email at the end if absent. A list never turns back into a single email.
func (c Contact) With(email string) Contact {
	if c.Has(email) {
		return c
	}
	if c.kind == ContactSingle {
		return Contact{kind: ContactMultiple, emails: []string{c.Primary(), email}}
	}
	emails := make([]string, len(c.emails), len(c.emails)+1)
	copy(emails, c.emails)
	return Contact{kind: ContactMultiple, emails: append(emails, email)}
}

// contactJSON mirrors the externally tagged encoding: {"Email": ...} or {"EmailList": [...]}.
type contactJSON struct {
	Email     *string  `json:"Email,omitempty"`
	EmailList []string `json:"EmailList,omitempty"`
}

// MarshalJSON encodes the contact as {"Email": "a"} or {"EmailList": ["a", "b"]}.
func (c Contact) MarshalJSON() ([]byte, error) {
	if c.kind == ContactSingle {
		email := c.Primary()
		return json.Marshal(contactJSON{Email: &email})
	}
	list := c.emails
	if list == nil {
		list = []string{}
	}
	return json.Marshal(map[string][]string{"EmailList": list})
}

// UnmarshalJSON accepts either encoding produced by MarshalJSON.
func (c *Contact) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw contactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Email != nil:
		*c = SingleContact(*raw.Email)
	case raw.EmailList != nil:
		*c = MultipleContact(raw.EmailList...)
	default:
		return errors.New("contact: expected Email or EmailList")
	}
	return nil
}
