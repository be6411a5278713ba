package models

// 音色预设：对外只暴露名字，ElevenLabs 的 voice_id 在这里统一映射
// 用查表而不是 switch，后面加音色只动这张表
const (
	VoiceRachel = "Rachel"
	VoiceDrew   = "Drew"
	VoiceClyde  = "Clyde"
	VoicePaul   = "Paul"
	VoiceDomi   = "Domi"
	VoiceDave   = "Dave"
	VoiceFin    = "Fin"
	VoiceSarah  = "Sarah"
	VoiceAntoni = "Antoni"
	VoiceThomas = "Thomas"
)

// DefaultVoice 未指定或不认识的音色名一律回退到它
const DefaultVoice = VoiceRachel

var voiceIDs = map[string]string{
	VoiceRachel: "21m00Tcm4TlvDq8ikWAM",
	VoiceDrew:   "29vD33N1CtxCmqQRPOHJ",
	VoiceClyde:  "2EiwWnXFnvU5JabPnv8n",
	VoicePaul:   "5Q0t7uMcjvnagumLfvZi",
	VoiceDomi:   "AZnzlk1XvdvUeBnXmlld",
	VoiceDave:   "CYw3kZ02Hs0563khs1Fj",
	VoiceFin:    "D38z5RcWu1voky8WS1ja",
	VoiceSarah:  "EXAVITQu4vr4xnSDxMaL",
	VoiceAntoni: "ErXwobaYiN019PkySvjV",
	VoiceThomas: "GBv7mTt0atIp3Br8iCZE",
}

// ResolveVoice 把音色名归一化：认识的原样返回，不认识的回退默认
func ResolveVoice(name string) string {
	if _, ok := voiceIDs[name]; ok {
		return name
	}
	return DefaultVoice
}

// VoiceID 查音色名对应的 ElevenLabs voice_id
func VoiceID(name string) string {
	if id, ok := voiceIDs[name]; ok {
		return id
	}
	return voiceIDs[DefaultVoice]
}
