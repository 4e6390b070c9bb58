package fileadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func TestSaveThenLoadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.csv")

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)
	m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	m.AddPolicy("g", "g", []string{"alice", "admin"})

	a := NewAdapter(path)
	assert.NoError(t, a.SavePolicy(m))

	loaded, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)
	assert.NoError(t, a.LoadPolicy(loaded))

	assert.True(t, loaded.HasPolicy("p", "p", []string{"alice", "data1", "read"}))
	assert.True(t, loaded.HasPolicy("g", "g", []string{"alice", "admin"}))
}

func TestLoadPolicyMissingFileIsNotError(t *testing.T) {
	m, _ := model.NewModelFromString(modelText)
	a := NewAdapter(filepath.Join(t.TempDir(), "missing.csv"))
	assert.NoError(t, a.LoadPolicy(m))
}

func TestLoadPolicyEmptyPathErrors(t *testing.T) {
	m, _ := model.NewModelFromString(modelText)
	a := NewAdapter("")
	assert.Error(t, a.LoadPolicy(m))
}

func TestLoadPolicySkipsComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.csv")
	err := os.WriteFile(path, []byte("# a comment\n\np, alice, data1, read\n"), 0o644)
	assert.NoError(t, err)

	m, _ := model.NewModelFromString(modelText)
	a := NewAdapter(path)
	assert.NoError(t, a.LoadPolicy(m))
	assert.Len(t, m.GetPolicy("p", "p"), 1)
}
