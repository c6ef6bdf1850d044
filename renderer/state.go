package renderer

type DepthTestType int32

const (
	DepthTestType_None DepthTestType = iota
	DepthTestType_Less
	DepthTestType_LessOrEqual
)

func (d DepthTestType) String() string {

	switch d {
	case DepthTestType_None:
		return "None"
	case DepthTestType_Less:
		return "Less"
	case DepthTestType_LessOrEqual:
		return "LessOrEqual"
	default:
		return "Unknown"
	}
}

type CullType int32

const (
	CullType_None CullType = iota
	CullType_Back
	CullType_Front
)

func (c CullType) String() string {

	switch c {
	case CullType_None:
		return "None"
	case CullType_Back:
		return "Back"
	case CullType_Front:
		return "Front"
	default:
		return "Unknown"
	}
}

type BlendType int32

const (
	BlendType_None BlendType = iota
	// BlendType_One_One adds the source to the destination, used to accumulate lights
	BlendType_One_One
	BlendType_SrcAlpha_OneMinusSrcAlpha
)

func (b BlendType) String() string {

	switch b {
	case BlendType_None:
		return "None"
	case BlendType_One_One:
		return "One_One"
	case BlendType_SrcAlpha_OneMinusSrcAlpha:
		return "SrcAlpha_OneMinusSrcAlpha"
	default:
		return "Unknown"
	}
}

type TextureFormat int32

const (
	TextureFormat_Unknown TextureFormat = iota
	TextureFormat_RGBA8
	TextureFormat_RGBA16F
	TextureFormat_RGBA32F
	TextureFormat_DepthF32
)

func (f TextureFormat) IsColorFormat() bool {
	return f == TextureFormat_RGBA8 ||
		f == TextureFormat_RGBA16F ||
		f == TextureFormat_RGBA32F
}

func (f TextureFormat) IsDepthFormat() bool {
	return f == TextureFormat_DepthF32
}

func (f TextureFormat) String() string {

	switch f {
	case TextureFormat_RGBA8:
		return "RGBA8"
	case TextureFormat_RGBA16F:
		return "RGBA16F"
	case TextureFormat_RGBA32F:
		return "RGBA32F"
	case TextureFormat_DepthF32:
		return "DepthF32"
	default:
		return "Unknown"
	}
}
