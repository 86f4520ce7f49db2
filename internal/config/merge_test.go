package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDefaultsToLocalWhenNothingConfigured(t *testing.T) {
	r := Resolve(DefaultConfig(), nil, false, nil, "", false, "", false, false)
	assert.Equal(t, []Host{{Host: "local"}}, r.Hosts)
	assert.Equal(t, "uptime", r.Sort)
	assert.Equal(t, "unicode", r.Icons)
	assert.False(t, r.All)
}

func TestResolveCLIHostsReplaceConfigHosts(t *testing.T) {
	cfg := &Config{Hosts: []Host{{Host: "tcp://a:2375"}}}
	r := Resolve(cfg, []string{"ssh://b", "local"}, true, nil, "", false, "", false, false)
	assert.Equal(t, []Host{{Host: "ssh://b"}, {Host: "local"}}, r.Hosts)
}

func TestResolveCLIFilterAppliesToAllHosts(t *testing.T) {
	cfg := &Config{Hosts: []Host{{Host: "local"}, {Host: "ssh://b"}}}
	r := Resolve(cfg, nil, false, []string{"label=env=prod"}, "", false, "", false, false)
	for _, h := range r.Hosts {
		assert.Equal(t, []string{"label=env=prod"}, h.Filter)
	}
}

func TestResolveAllIsOneWayEnable(t *testing.T) {
	cfg := &Config{All: true}
	r := Resolve(cfg, nil, false, nil, "", false, "", false, false)
	assert.True(t, r.All, "config all:true must survive absence of --all")

	cfg2 := &Config{All: false}
	r2 := Resolve(cfg2, nil, false, nil, "", false, "", false, true)
	assert.True(t, r2.All)
}

func TestResolveSortAndIconsOverrideOnlyWhenSet(t *testing.T) {
	cfg := &Config{Sort: "name", Icons: "nerd"}
	r := Resolve(cfg, nil, false, nil, "", false, "", false, false)
	assert.Equal(t, "name", r.Sort)
	assert.Equal(t, "nerd", r.Icons)

	r2 := Resolve(cfg, nil, false, nil, "cpu", true, "unicode", true, false)
	assert.Equal(t, "cpu", r2.Sort)
	assert.Equal(t, "unicode", r2.Icons)
}
