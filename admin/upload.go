package admin

import (
	"context"
	"errors"
	"io"
)

// ImageTarget names which form buffer an uploaded image lands in.
type ImageTarget string

const (
	TargetProject ImageTarget = "project"
	TargetSkill   ImageTarget = "skill"
	TargetProfile ImageTarget = "profile"
)

var ErrUnknownTarget = errors.New("unknown image target")

// AttachImage streams the file to the image host, reporting progress as
// it goes. On success the returned URL is written into the targeted
// buffer's image field; on failure the buffer is left untouched. The
// upload is always a separate step from submitting the entity itself.
func (c *Controller) AttachImage(ctx context.Context, target ImageTarget, filename string, content io.Reader, progress func(percent int)) error {
	switch target {
	case TargetProject:
		if c.ProjectBuffer == nil {
			return ErrNoActiveEdit
		}
	case TargetSkill:
		if c.SkillBuffer == nil {
			return ErrNoActiveEdit
		}
	case TargetProfile:
		// always editable in place
	default:
		return ErrUnknownTarget
	}

	url, err := c.uploader.UploadImage(ctx, filename, content, progress)
	if err != nil {
		c.logger.Error().Err(err).Str("target", string(target)).Msg("image upload failed")
		return err
	}

	switch target {
	case TargetProject:
		c.ProjectBuffer.Image = url
	case TargetSkill:
		c.SkillBuffer.Image = &url
	case TargetProfile:
		c.ProfileBuffer.Image = url
	}

	return nil
}
