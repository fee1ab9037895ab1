package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.SimplifiedChinese

	message.SetString(lang, MsgRoundStarted, "第%d轮：这是哪位角色？")
	message.SetString(lang, MsgNoRound, "请先开始游戏！")
	message.SetString(lang, MsgEmptyPool, "没有可用的角色。")
	message.SetString(lang, MsgHintUnlocked, "💡 新提示：%s")
	message.SetString(lang, MsgNoMoreHints, "这个角色没有更多提示了。")
	message.SetString(lang, MsgEmptyAnswer, "请输入答案！")
	message.SetString(lang, MsgCorrect, "🎉 正确答案！+%d分")
	message.SetString(lang, MsgWrong, "⚠️ 答案错误！还剩%d次机会")
	message.SetString(lang, MsgGameOver, "❌ 游戏结束！正确答案是：%s")
	message.SetString(lang, MsgSkipped, "跳过了！正确答案是：%s")
	message.SetString(lang, MsgRoundRetired, "角色列表已更新。正确答案是：%s")
	message.SetString(lang, MsgKeepInvestigating, "🔍 继续调查：还需要%d条线索才能推理。")
	message.SetString(lang, MsgCaseOnly, "该操作仅在案件模式中可用。")
	message.SetString(lang, MsgUnknownEvidence, "未知的证据类型 %q。")
	message.SetString(lang, MsgLowEnergy, "⚡ 精力不足：需要%d，剩余%d。")
	message.SetString(lang, MsgEvidenceFound, "🧾 收集到证据：%s")
	message.SetString(lang, MsgEvidenceExhausted, "没有更多%s证据可以收集。")
	message.SetString(lang, MsgDeductionUnlocked, "🧠 收集到证据：%s。推理阶段已解锁！")
	message.SetString(lang, MsgTimelineEvent, "📅 %d：%s")
	message.SetString(lang, MsgTimelineEnd, "时间线已经到头了。")
	message.SetString(lang, MsgInvalidPiece, "拼图碎片 %d 不存在。")
	message.SetString(lang, MsgPieceRevealed, "🧩 %s：%s")
	message.SetString(lang, MsgPieceDeduction, "🧩 %s：%s。推理阶段已解锁！")
	message.SetString(lang, MsgPieceAlreadyShown, "拼图碎片 %d 已经揭晓。")
	message.SetString(lang, MsgDataLoaded, "✅ 成功从网络加载%d个角色。")
	message.SetString(lang, MsgDataFallback, "⚠️ 爬取失败，使用%d个内置角色。")
	message.SetString(lang, MsgBackupSelected, "已切换到%d个内置角色。")
	message.SetString(lang, MsgResultAcknowledged, "进入下一轮！")
}
