package bsp

import "fmt"

// LumpID identifies one of the 64 directory slots.
type LumpID int

// Lump identifiers in directory order.
const (
	LumpEntities LumpID = iota
	LumpPlanes
	LumpTexData
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexInfo
	LumpFaces
	LumpLighting
	LumpOcclusion
	LumpLeafs
	LumpFaceIDs
	LumpEdges
	LumpSurfEdges
	LumpModels
	LumpWorldLights
	LumpLeafFaces
	LumpLeafBrushes
	LumpBrushes
	LumpBrushSides
	LumpAreas
	LumpAreaPortals
	LumpFaceBrushes
	LumpFaceBrushList
	LumpUnused1
	LumpUnused2
	LumpDispInfo
	LumpOriginalFaces
	LumpPhysDisp
	LumpPhysCollide
	LumpVertNormals
	LumpVertNormalIndices
	LumpDispLightmapAlphas
	LumpDispVerts
	LumpDispLightmapSamplePositions
	LumpGameLump
	LumpLeafWaterData
	LumpPrimitives
	LumpPrimVerts
	LumpPrimIndices
	LumpPakFile
	LumpClipPortalVerts
	LumpCubemaps
	LumpTexDataStringData
	LumpTexDataStringTable
	LumpOverlays
	LumpLeafMinDistToWater
	LumpFaceMacroTextureInfo
	LumpDispTris
	LumpPropBlob
	LumpWaterOverlays
	LumpLeafAmbientIndexHDR
	LumpLeafAmbientIndex
	LumpLightingHDR
	LumpWorldLightsHDR
	LumpLeafAmbientLightingHDR
	LumpLeafAmbientLighting
	LumpXZipPakFile
	LumpFacesHDR
	LumpMapFlags
	LumpOverlayFades
	LumpOverlaySystemLevels
	LumpPhysLevel
	LumpDispMultiBlend

	// HeaderLumps is the fixed number of directory entries.
	HeaderLumps = 64
)

var lumpNames = [HeaderLumps]string{
	"LUMP_ENTITIES",
	"LUMP_PLANES",
	"LUMP_TEXDATA",
	"LUMP_VERTEXES",
	"LUMP_VISIBILITY",
	"LUMP_NODES",
	"LUMP_TEXINFO",
	"LUMP_FACES",
	"LUMP_LIGHTING",
	"LUMP_OCCLUSION",
	"LUMP_LEAFS",
	"LUMP_FACEIDS",
	"LUMP_EDGES",
	"LUMP_SURFEDGES",
	"LUMP_MODELS",
	"LUMP_WORLDLIGHTS",
	"LUMP_LEAFFACES",
	"LUMP_LEAFBRUSHES",
	"LUMP_BRUSHES",
	"LUMP_BRUSHSIDES",
	"LUMP_AREAS",
	"LUMP_AREAPORTALS",
	"LUMP_FACEBRUSHES",
	"LUMP_FACEBRUSHLIST",
	"LUMP_UNUSED1",
	"LUMP_UNUSED2",
	"LUMP_DISPINFO",
	"LUMP_ORIGINALFACES",
	"LUMP_PHYSDISP",
	"LUMP_PHYSCOLLIDE",
	"LUMP_VERTNORMALS",
	"LUMP_VERTNORMALINDICES",
	"LUMP_DISP_LIGHTMAP_ALPHAS",
	"LUMP_DISP_VERTS",
	"LUMP_DISP_LIGHTMAP_SAMPLE_POSITIONS",
	"LUMP_GAME_LUMP",
	"LUMP_LEAFWATERDATA",
	"LUMP_PRIMITIVES",
	"LUMP_PRIMVERTS",
	"LUMP_PRIMINDICES",
	"LUMP_PAKFILE",
	"LUMP_CLIPPORTALVERTS",
	"LUMP_CUBEMAPS",
	"LUMP_TEXDATA_STRING_DATA",
	"LUMP_TEXDATA_STRING_TABLE",
	"LUMP_OVERLAYS",
	"LUMP_LEAFMINDISTTOWATER",
	"LUMP_FACE_MACRO_TEXTURE_INFO",
	"LUMP_DISP_TRIS",
	"LUMP_PROP_BLOB",
	"LUMP_WATEROVERLAYS",
	"LUMP_LEAF_AMBIENT_INDEX_HDR",
	"LUMP_LEAF_AMBIENT_INDEX",
	"LUMP_LIGHTING_HDR",
	"LUMP_WORLDLIGHTS_HDR",
	"LUMP_LEAF_AMBIENT_LIGHTING_HDR",
	"LUMP_LEAF_AMBIENT_LIGHTING",
	"LUMP_XZIPPAKFILE",
	"LUMP_FACES_HDR",
	"LUMP_MAP_FLAGS",
	"LUMP_OVERLAY_FADES",
	"LUMP_OVERLAY_SYSTEM_LEVELS",
	"LUMP_PHYSLEVEL",
	"LUMP_DISP_MULTIBLEND",
}

// String returns the canonical LUMP_* name.
func (id LumpID) String() string {
	if id < 0 || id >= HeaderLumps {
		return fmt.Sprintf("LUMP_UNKNOWN(%d)", int(id))
	}
	return lumpNames[id]
}

// Valid reports whether id addresses a directory slot.
func (id LumpID) Valid() bool {
	return id >= 0 && id < HeaderLumps
}
