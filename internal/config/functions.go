package config

import (
	"os"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Functions are available inside the configuration file.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"env": EnvFunc,
	}
}

// EnvFunc returns an environment variable, or the optional second argument
// when the variable is unset or empty.
//
//	client_secret = env("ADMINPORTAL_CLIENT_SECRET")
//	base_url      = env("ADMINPORTAL_API_URL", "http://localhost:8080")
var EnvFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	VarParam: &function.Parameter{Name: "default", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if v := os.Getenv(args[0].AsString()); v != "" {
			return cty.StringVal(v), nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return cty.StringVal(""), nil
	},
})
