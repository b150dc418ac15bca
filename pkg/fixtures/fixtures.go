// Package fixtures resolves per-instance test data from a base URL.
//
// Instances are identified by a fragment of their base URL ("staging",
// "production", ...). The table is ordered and the first entry whose name is
// a substring of the base URL wins, so overlapping fragments resolve the same
// way on every run:
//
//	fixtures.Resolve("https://staging.example.com", "username") // "staging_user", true
//	fixtures.Resolve("https://unknown.example.com", "username") // "", false
//
// An unknown instance or an unknown key is not an error; the boolean is the
// "not found" signal.
package fixtures

import "strings"

const (
	KeyUsername = "username"
	KeyAPIKey   = "apiKey"
	KeyTestItem = "testItem"
)

type Fixture struct {
	Username string `mapstructure:"username" json:"username"`
	APIKey   string `mapstructure:"apiKey" json:"apiKey"`
	TestItem string `mapstructure:"testItem" json:"testItem"`
}

// Field returns the value stored under key. Empty values count as absent.
func (f Fixture) Field(key string) (string, bool) {
	var v string
	switch key {
	case KeyUsername:
		v = f.Username
	case KeyAPIKey:
		v = f.APIKey
	case KeyTestItem:
		v = f.TestItem
	default:
		return "", false
	}
	return v, v != ""
}

type Entry struct {
	Name    string  `mapstructure:"name" json:"name"`
	Fixture Fixture `mapstructure:"fixture" json:"fixture"`
}

// Table is an ordered list of instance fixtures. Order is significant.
type Table []Entry

// Default is the built-in fixture table.
var Default = Table{
	{Name: "production", Fixture: Fixture{Username: "prod_user", APIKey: "prod_api_key", TestItem: "Production Item"}},
	{Name: "staging", Fixture: Fixture{Username: "staging_user", APIKey: "staging_api_key", TestItem: "Staging Item"}},
	{Name: "development", Fixture: Fixture{Username: "dev_user", APIKey: "dev_api_key", TestItem: "Dev Item"}},
	{Name: "scale-computing", Fixture: Fixture{Username: "scale_user", APIKey: "scale_api_key", TestItem: "Scale Item"}},
}

func (t Table) Lookup(baseURL string) (Entry, bool) {
	for _, e := range t {
		if e.Name != "" && strings.Contains(baseURL, e.Name) {
			return e, true
		}
	}
	return Entry{}, false
}

func (t Table) Resolve(baseURL, key string) (string, bool) {
	e, ok := t.Lookup(baseURL)
	if !ok {
		return "", false
	}
	return e.Fixture.Field(key)
}

// Names returns the instance names in table order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, e := range t {
		names = append(names, e.Name)
	}
	return names
}

func Lookup(baseURL string) (Entry, bool) {
	return Default.Lookup(baseURL)
}

func Resolve(baseURL, key string) (string, bool) {
	return Default.Resolve(baseURL, key)
}

func IsInstance(baseURL, name string) bool {
	return name != "" && strings.Contains(baseURL, name)
}
