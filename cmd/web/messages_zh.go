package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.SimplifiedChinese

	message.SetString(lang, msgStillLoading, "⏳ 仍在后台爬取角色，暂时使用%d个角色。")
	message.SetString(lang, msgFetchingDisabled, "爬取已关闭，使用%d个内置角色。")

	message.SetString(lang, "ui.title", "动漫角色猜猜看")
	message.SetString(lang, "ui.timeout_title", "超时")
	message.SetString(lang, "ui.timeout_text", "游戏响应超时，角色数据可能仍在后台获取。")
	message.SetString(lang, "ui.timeout_back", "返回游戏")
	message.SetString(lang, "ui.nav_game", "游戏")
	message.SetString(lang, "ui.nav_characters", "角色")
	message.SetString(lang, "ui.nav_api", "API")

	message.SetString(lang, "ui.score", "得分")
	message.SetString(lang, "ui.combo", "连击")
	message.SetString(lang, "ui.max_combo", "最高连击")
	message.SetString(lang, "ui.rounds", "轮数")
	message.SetString(lang, "ui.solved", "答对")
	message.SetString(lang, "ui.pool", "%d个角色（%s）")
	message.SetString(lang, "ui.scoring", "计分方式：%s")

	message.SetString(lang, "ui.answer_was", "正确答案是")
	message.SetString(lang, "ui.points_earned", "+%d分")
	message.SetString(lang, "ui.continue", "继续")
	message.SetString(lang, "ui.start_classic", "开始经典模式")
	message.SetString(lang, "ui.start_case", "开始案件调查")
	message.SetString(lang, "ui.round", "第%d轮")
	message.SetString(lang, "ui.hint_tier_0", "作品")
	message.SetString(lang, "ui.hint_tier_1", "描述")
	message.SetString(lang, "ui.hint_tier_2", "名字首字")
	message.SetString(lang, "ui.attempts_left", "还剩%d次机会")
	message.SetString(lang, "ui.your_answer", "你的答案")
	message.SetString(lang, "ui.submit", "提交")
	message.SetString(lang, "ui.hint", "提示")
	message.SetString(lang, "ui.skip", "跳过")

	message.SetString(lang, "ui.phase_investigation", "调查阶段")
	message.SetString(lang, "ui.phase_deduction", "推理阶段")
	message.SetString(lang, "ui.energy", "精力 %d/%d")
	message.SetString(lang, "ui.clues", "线索 %d/%d")
	message.SetString(lang, "ui.evidence_trait", "特征")
	message.SetString(lang, "ui.evidence_timeline", "经历")
	message.SetString(lang, "ui.evidence_relationship", "人际关系")
	message.SetString(lang, "ui.evidence_testimony", "证词")
	message.SetString(lang, "ui.timeline", "时间线")
	message.SetString(lang, "ui.advance_timeline", "下一事件")
	message.SetString(lang, "ui.puzzle", "拼图")

	message.SetString(lang, "ui.data", "角色数据")
	message.SetString(lang, "ui.refresh", "从网络爬取")
	message.SetString(lang, "ui.use_backup", "使用内置角色")
	message.SetString(lang, "ui.debug_show", "显示调试信息")
	message.SetString(lang, "ui.debug_hide", "隐藏调试信息")
	message.SetString(lang, "ui.debug", "调试")
	message.SetString(lang, "ui.debug_enabled", "爬取已启用")
	message.SetString(lang, "ui.debug_loading", "正在爬取")
	message.SetString(lang, "ui.debug_scraped", "已爬取角色")
	message.SetString(lang, "ui.debug_fetched_at", "爬取时间")
	message.SetString(lang, "ui.debug_last_error", "最近错误")
	message.SetString(lang, "ui.trace_step", "步骤")
	message.SetString(lang, "ui.trace_selector", "选择器")
	message.SetString(lang, "ui.trace_count", "匹配数")
	message.SetString(lang, "ui.trace_error", "错误")

	message.SetString(lang, "ui.characters_title", "角色列表")
	message.SetString(lang, "ui.characters_count", "角色数")
	message.SetString(lang, "ui.characters_works", "作品数")
	message.SetString(lang, "ui.characters_source", "来源")
	message.SetString(lang, "ui.characters_name", "名字")
	message.SetString(lang, "ui.characters_anime", "作品")
	message.SetString(lang, "ui.characters_hint", "描述")
}
