package ledger

var WriteFile = writeFile
