package emit

import "github.com/arthur-debert/dirmod/pkg/types"

// Declare builds the record for one policy.
func Declare(policy types.ResolvedPolicy) types.Declaration {
	vis := policy.Modifier.Visibility.Render()
	decl := types.Declaration{
		Module: types.ModuleDecl{Name: policy.Entry.Name, Visibility: vis},
	}
	if policy.Modifier.Reexport {
		decl.Module.Visibility = ""
		decl.Reexport = &types.ReexportDecl{Name: policy.Entry.Name, Visibility: vis}
	}
	if policy.Condition != nil {
		cond := *policy.Condition
		decl.Condition = &cond
	}
	return decl
}

// DeclareAll maps policies in order. The result is never nil.
func DeclareAll(policies []types.ResolvedPolicy) []types.Declaration {
	decls := make([]types.Declaration, 0, len(policies))
	for _, p := range policies {
		decls = append(decls, Declare(p))
	}
	return decls
}
