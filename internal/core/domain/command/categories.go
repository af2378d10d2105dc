package command

const (
	CategoryGeneral = "General"
	CategoryFun     = "Fun"
	CategoryHost    = "Host"
	CategoryGuild   = "Guild"
)
