package transport

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Type uint8

const (
	TypeMqtt = Type(0)

	TypeDefault = TypeMqtt
)

var (
	AllTypes = Types{
		TypeMqtt,
	}
)

func (this *Type) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "mqtt":
		*this = TypeMqtt
		return nil
	default:
		return fmt.Errorf("illegal-transport-type: %s", plain)
	}
}

func (this Type) String() string {
	switch this {
	case TypeMqtt:
		return "mqtt"
	default:
		return fmt.Sprintf("illegal-transport-type-%d", this)
	}
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
