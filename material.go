package glshaders

import "strconv"

// Material is an opaque base blend/compositing mode. It seeds a compiled
// program's default behavior before shader macros are applied.
type Material int32

const (
	MatSolid Material = iota
	MatTransparentAlphaChannel
	MatTransparentAlphaChannelRef
	// Legacy fixed-pipeline modes. Not valid inputs to shader generation.
	MatTransparentVertexAlpha
	MatOneTextureBlend
)

// programmable reports whether m may seed a generated shader program.
func (m Material) programmable() bool {
	return m != MatTransparentVertexAlpha && m != MatOneTextureBlend
}

func (m Material) String() string {
	switch m {
	case MatSolid:
		return "solid"
	case MatTransparentAlphaChannel:
		return "transparent_alpha_channel"
	case MatTransparentAlphaChannelRef:
		return "transparent_alpha_channel_ref"
	case MatTransparentVertexAlpha:
		return "transparent_vertex_alpha"
	case MatOneTextureBlend:
		return "onetexture_blend"
	}
	return "material(" + strconv.Itoa(int(m)) + ")"
}

// Handle is an opaque GPU program token assigned by the driver. For a
// passthrough record generated without shader support it numerically equals
// the base material.
type Handle int32

// TileMaterial classifies how a tile surface blends and animates. It is the
// input of the convenience shader request that derives constants and base
// material from rendering intent.
type TileMaterial int32

const (
	TileBasic TileMaterial = iota
	TileAlpha
	TileLiquidTransparent
	TileLiquidOpaque
	TileWavingLeaves
	TileWavingPlants
	TileWavingLiquidBasic
	TileWavingLiquidTransparent
	TileWavingLiquidOpaque
	TileOpaque
	TilePlain
	TilePlainAlpha
)

// DrawKind tags the node draw style a tile shader variant is generated for.
// Its numeric value is forwarded verbatim as the DRAWTYPE macro.
type DrawKind int32

// baseMaterial returns the base blend mode a tile material compiles against.
func (t TileMaterial) baseMaterial() Material {
	switch t {
	case TileAlpha, TilePlainAlpha, TileLiquidTransparent, TileWavingLiquidTransparent:
		return MatTransparentAlphaChannel
	case TileBasic, TilePlain, TileWavingLeaves, TileWavingPlants, TileWavingLiquidBasic:
		return MatTransparentAlphaChannelRef
	}
	return MatSolid
}
