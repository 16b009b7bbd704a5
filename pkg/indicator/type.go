package indicator

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Type uint8

const (
	TypeHue           = Type(0)
	TypeHomeAssistant = Type(1)
	TypeNone          = Type(2)

	TypeDefault = TypeHue
)

var (
	AllTypes = Types{
		TypeHue,
		TypeHomeAssistant,
		TypeNone,
	}
)

func (this *Type) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "hue":
		*this = TypeHue
		return nil
	case "homeassistant", "home-assistant", "ha":
		*this = TypeHomeAssistant
		return nil
	case "none", "off":
		*this = TypeNone
		return nil
	default:
		return fmt.Errorf("illegal-indicator-type: %s", plain)
	}
}

func (this Type) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-indicator-type-%d", this)
	}
	return string(v)
}

func (this Type) MarshalText() (text []byte, err error) {
	switch this {
	case TypeHue:
		return []byte("hue"), nil
	case TypeHomeAssistant:
		return []byte("homeAssistant"), nil
	case TypeNone:
		return []byte("none"), nil
	default:
		return nil, fmt.Errorf("illegal indicator type: %d", this)
	}
}

func (this *Type) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

func (this Type) MarshalYAML() (any, error) {
	return this.String(), nil
}

func (this *Type) UnmarshalYAML(node *yaml.Node) error {
	var plain string
	if err := node.Decode(&plain); err != nil {
		return err
	}
	return this.Set(plain)
}

type Types []Type

func (this Types) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Types) String() string {
	return strings.Join(this.Strings(), ",")
}
