package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasic(t *testing.T) {
	c, err := NewConfigFromText(`
# a comment
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"sub", "obj", "act"}, c.Strings("request_definition::r"))
	assert.Equal(t, []string{"sub", "obj", "act", "eft"}, c.Strings("policy_definition::p"))
	assert.Equal(t, "some(where (p.eft == allow))", c.String("policy_effect::e"))
	assert.Contains(t, c.String("matchers::m"), "keyMatch")
}

func TestDuplicateKeyFails(t *testing.T) {
	_, err := NewConfigFromText(`
[request_definition]
r = sub, obj, act
r = sub, obj
`)
	assert.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMalformedSectionFails(t *testing.T) {
	_, err := NewConfigFromText("[request_definition\nr = sub, obj, act\n")
	assert.Error(t, err)
}

func TestContinuationUnsupported(t *testing.T) {
	_, err := NewConfigFromText("[matchers]\nm = r.sub == p.sub && \\\n")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	c := &Config{}
	assert.NoError(t, c.Set("matchers::m", "r.sub == p.sub"))
	assert.Equal(t, "r.sub == p.sub", c.String("matchers::m"))
}
