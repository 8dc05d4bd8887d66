// Package docker provides rules for Dockerfiles.
package docker

import (
	"fmt"
	"strings"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const baseImagesName = "docker-base-images"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        baseImagesName,
		Description: "base images are tagged with a supported release",
		New:         newBaseImages,
	})
}

func newBaseImages(env *rule.Env) rule.Rule {
	images := env.Config.Docker.Images
	patterns := []string{"Dockerfile", "Dockerfile.*", "*.Dockerfile"}
	return rule.NewFileRule(env, baseImagesName, patterns, func(file string) ([]*finding.Finding, error) {
		bf, err := env.Documents.BuildFile(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		var findings []*finding.Finding
		stages := map[string]struct{}{}
		for _, from := range bf.From {
			if v := checkImage(from.Image, stages, images); v != nil {
				findings = append(findings, &finding.Finding{
					Rule:     baseImagesName,
					Severity: v.severity,
					Message:  v.message,
					File:     file,
					Position: finding.LineColumn(from.Line, 1),
				})
			}
			if from.Stage != "" {
				stages[from.Stage] = struct{}{}
			}
		}
		return findings, nil
	})
}

type violation struct {
	severity finding.Severity
	message  string
}

func errorf(format string, a ...any) *violation {
	return &violation{severity: finding.Error, message: fmt.Sprintf(format, a...)}
}

// checkImage returns nil if the image complies with the policy.
// Stages, scratch and build arguments aren't images of a registry.
func checkImage(image string, stages map[string]struct{}, images map[string][]string) *violation {
	if _, ok := stages[image]; ok {
		return nil
	}
	if image == "scratch" || strings.Contains(image, "$") {
		return nil
	}
	ref, _, hasDigest := strings.Cut(image, "@")
	name, tag := splitTag(ref)
	if tag == "" {
		if hasDigest {
			return &violation{
				severity: finding.Info,
				message:  "Image is pinned by a digest without a tag, so the release can't be checked, is " + image,
			}
		}
		return errorf("Image should have a tag, is %s", image)
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, "docker.io/"), "library/")
	accepted, ok := images[name]
	if !ok {
		return nil
	}
	for _, prefix := range accepted {
		if strings.HasPrefix(tag, prefix) {
			return nil
		}
	}
	return errorf("%s should be one of [%s], is %s", name, strings.Join(accepted, ", "), tag)
}

// splitTag splits an image reference into the repository and the tag.
// A colon before the last slash belongs to a registry port.
func splitTag(ref string) (string, string) {
	i := strings.LastIndex(ref, ":")
	if i < 0 || i < strings.LastIndex(ref, "/") {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}
