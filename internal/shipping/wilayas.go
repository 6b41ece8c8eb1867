package shipping

// wilayaPostalCodes maps wilaya codes to their known postal codes.
// Algiers (16) and Oran (31) carry several.
var wilayaPostalCodes = map[string][]string{
	"01": {"01000"},
	"02": {"02000"},
	"03": {"03000"},
	"04": {"04000"},
	"05": {"05000"},
	"06": {"06000"},
	"07": {"07000"},
	"08": {"08000"},
	"09": {"09000"},
	"10": {"10000"},
	"11": {"11000"},
	"12": {"12000"},
	"13": {"13000"},
	"14": {"14000"},
	"15": {"15000"},
	"16": {"16000", "16001", "16002", "16003", "16004", "16005"},
	"17": {"17000"},
	"18": {"18000"},
	"19": {"19000"},
	"20": {"20000"},
	"21": {"21000"},
	"22": {"22000"},
	"23": {"23000"},
	"24": {"24000"},
	"25": {"25000"},
	"26": {"26000"},
	"27": {"27000"},
	"28": {"28000"},
	"29": {"29000"},
	"30": {"30000"},
	"31": {"31000", "31001", "31002"},
	"32": {"32000"},
	"33": {"33000"},
	"34": {"34000"},
	"35": {"35000"},
	"36": {"36000"},
	"37": {"37000"},
	"38": {"38000"},
	"39": {"39000"},
	"40": {"40000"},
	"41": {"41000"},
	"42": {"42000"},
	"43": {"43000"},
	"44": {"44000"},
	"45": {"45000"},
	"46": {"46000"},
	"47": {"47000"},
	"48": {"48000"},
}
