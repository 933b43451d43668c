package cli

import (
	"context"
	"maps"
	"os/exec"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/variables"
)

// authorField is filled from the git user name when no other layer sets it
const authorField = "author"

// gitUserName returns the configured git user name, or "" when git is not
// installed or has no name set
func gitUserName(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "git", "config", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func defaultAuthor(ctx context.Context, env *environment, s *variables.Schema, provided map[string]interface{}) map[string]interface{} {
	if _, ok := s.Field(authorField); !ok {
		return provided
	}
	if _, set := provided[authorField]; set || env.gitUser == nil {
		return provided
	}
	name := env.gitUser(ctx)
	if name == "" {
		return provided
	}
	withAuthor := maps.Clone(provided)
	withAuthor[authorField] = name
	return withAuthor
}
