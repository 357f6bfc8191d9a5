package domain

// ImageState is the lifecycle state of an uploaded image asset.
type ImageState string

const (
	ImageStateDraft      ImageState = "draft"
	ImageStatePublishing ImageState = "publishing"
	ImageStatePublished  ImageState = "published"
)

// validImageTransitions lists the forward moves of an asset. Published is terminal.
var validImageTransitions = map[ImageState][]ImageState{
	"":                   {ImageStateDraft, ImageStatePublishing},
	ImageStateDraft:      {ImageStatePublishing},
	ImageStatePublishing: {ImageStatePublishing, ImageStatePublished},
}

// CanTransitionTo reports whether an asset in state s may move to next.
// The empty state stands for "no record", which happens when the state
// store lost or never saw the upload.
func (s ImageState) CanTransitionTo(next ImageState) bool {
	for _, allowed := range validImageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ImageWebPContentType is the only encoding stored by the image pipeline.
const ImageWebPContentType = "image/webp"

// AllowedImageExtensions are the upload extensions accepted before re-encoding.
var AllowedImageExtensions = []string{".jpeg", ".jpg", ".png", ".webp"}
