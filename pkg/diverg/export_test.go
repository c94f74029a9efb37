package diverg

var UnionKeys = unionKeys
var Clamp = clamp

const ChunkSize = chunkSize
