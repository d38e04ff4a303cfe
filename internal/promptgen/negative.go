package promptgen

import "strings"

// static undesirable-descriptor list; independent of learning
var negativeDescriptors = []string{
	"blurry",
	"low quality",
	"distorted anatomy",
	"extra limbs",
	"deformed hands",
	"watermark",
	"text overlay",
	"cluttered background",
	"oversaturated colors",
	"amateur snapshot",
	"poorly fitted garment",
	"wrinkled fabric artifacts",
}

func negativePrompt() string {
	return strings.Join(negativeDescriptors, ", ")
}
