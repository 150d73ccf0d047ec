package numrec

var ByMmap = byMmap
var ByReading = byReading
