package jsd

var FmtResult = fmtResult
var Sane = sane
