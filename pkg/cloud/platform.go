package cloud

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// ambiguousPlatforms lists provider labels that name a database engine
// edition without qualifying the underlying OS.
var ambiguousPlatforms = map[string]bool{
	"SQL Server Standard":   true,
	"SQL Server Enterprise": true,
	"SQL Server Web":        true,
	"SQL Server Express":    true,
}

// osHints are checked against image name and description in priority order.
var osHints = []struct {
	keyword string
	os      string
}{
	{"amazon linux", "Amazon Linux 2"},
	{"windows", "Windows"},
	{"ubuntu", "Ubuntu"},
	{"red hat", "Red Hat Enterprise Linux"},
}

// ClarifyPlatform refines an engine-only platform label into an OS-qualified
// one by inspecting the backing image. It is best-effort and never fails:
// anything short of a confident match degrades to the original label.
// Unambiguous labels are returned unchanged without any lookup.
func (r *Resolver) ClarifyPlatform(ctx context.Context, platform, imageID string) string {
	if !ambiguousPlatforms[platform] {
		return platform
	}
	if imageID == "" {
		return platform
	}

	img, err := r.describeImage(ctx, imageID)
	if err != nil {
		log.Debugf("clarify platform %q: image %s lookup failed: %v", platform, imageID, err)
		return platform
	}
	if img == nil {
		return platform
	}

	return clarifyFromImage(platform, *img)
}

// clarifyFromImage applies the fixed hint tables to an already-fetched image.
// Pure so it can be tested without any network dependency.
func clarifyFromImage(platform string, img core.ImageRecord) string {
	haystack := strings.ToLower(img.Name + " " + img.Description)
	for _, hint := range osHints {
		if strings.Contains(haystack, hint.keyword) {
			return hint.os + " with " + platform
		}
	}
	if img.PlatformDetails != "" {
		return img.PlatformDetails
	}
	return platform
}

func (r *Resolver) describeImage(ctx context.Context, imageID string) (*core.ImageRecord, error) {
	out, err := r.api.DescribeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Images) == 0 {
		return nil, nil
	}

	img := out.Images[0]
	rec := core.ImageRecord{ImageID: imageID}
	if img.Name != nil {
		rec.Name = *img.Name
	}
	if img.Description != nil {
		rec.Description = *img.Description
	}
	if img.PlatformDetails != nil {
		rec.PlatformDetails = *img.PlatformDetails
	}
	return &rec, nil
}
