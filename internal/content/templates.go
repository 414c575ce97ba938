package content

// Placeholder marks where the topic is substituted into a template segment.
const Placeholder = "{{topic}}"

// Casual tone segments.
const (
	casualIntro = `Hey there! Let's dive into the fascinating world of {{topic}}. I've been thinking about this lately, and there's so much to unpack here.`

	casualBody = `So here's the thing about {{topic}} - it's not as complicated as people make it out to be. I remember when I first started learning about this stuff, I was totally overwhelmed. But once you break it down into bite-sized pieces, it all starts to make sense.

The cool thing is that {{topic}} affects pretty much everyone these days. Whether you realize it or not, you're probably already interacting with it in some way. And honestly, that's pretty amazing when you think about it.

What really gets me excited is how this field is constantly evolving. Just when you think you've got it all figured out, something new comes along and changes the game completely.`

	casualConclusion = `So there you have it! {{topic}} in a nutshell. I hope this gives you a good starting point to explore further. Remember, the best way to learn is by doing, so don't be afraid to jump in and start experimenting. You've got this!`
)

// Professional tone segments.
const (
	professionalIntro = `In today's rapidly evolving landscape, understanding {{topic}} has become increasingly crucial for businesses and professionals alike.`

	professionalBody = `The strategic implementation of {{topic}} requires a comprehensive understanding of both current market dynamics and future technological trends. Organizations that fail to adapt to these changes risk falling behind their competitors in an increasingly digital marketplace.

Key considerations include scalability, security, and user experience optimization. These factors must be carefully balanced to ensure successful deployment and long-term sustainability of any {{topic}}-related initiatives.

Furthermore, stakeholder buy-in and proper change management protocols are essential for smooth transitions and maximum return on investment.`

	professionalConclusion = `In conclusion, {{topic}} represents a significant opportunity for organizations willing to invest in proper planning and execution. The strategic advantages gained through early adoption will prove invaluable in maintaining competitive positioning in the marketplace.`
)

// Friendly tone segments.
const (
	friendlyIntro = `Welcome, friend! I'm excited to share some insights about {{topic}} with you today. It's one of those topics that really gets me excited!`

	friendlyBody = `You know what I love about {{topic}}? It brings people together! I've met so many amazing individuals through my journey with this subject, and each conversation has taught me something new.

The best part is that you don't need to be an expert to get started. Everyone begins somewhere, and the community around {{topic}} is incredibly welcoming and supportive. Don't be afraid to ask questions or share your own experiences.

I always tell people that the learning never stops with {{topic}}. Every day brings new discoveries and opportunities to grow.`

	friendlyConclusion = `Thanks for joining me on this exploration of {{topic}}! I hope you found it as interesting as I do. Feel free to reach out if you have any questions or want to share your own experiences. I'd love to hear from you!`
)

// Informative tone segments.
const (
	informativeIntro = `{{topic}} represents a complex and multifaceted subject that requires careful examination and analysis to fully comprehend its implications.`

	informativeBody = `To fully understand {{topic}}, we must first examine its historical context and foundational principles. The development of this field can be traced back several decades, with significant milestones occurring at regular intervals.

Current research indicates that {{topic}} encompasses several key components: theoretical frameworks, practical applications, and emerging methodologies. Each of these elements plays a crucial role in the overall ecosystem.

Recent studies have shown measurable impacts across various sectors, with adoption rates increasing by approximately 15-20% annually over the past five years.`

	informativeConclusion = `This overview of {{topic}} provides a foundation for further study and practical application. Continued research and development in this field promise exciting advances and new opportunities for innovation in the coming years.`
)

// Persuasive tone segments.
const (
	persuasiveIntro = `Imagine a world where {{topic}} transforms the way we think, work, and live. This isn't just a possibility—it's happening right now.`

	persuasiveBody = `The time to embrace {{topic}} is now. While others hesitate and debate, forward-thinking individuals and organizations are already reaping the benefits of early adoption.

Consider this: every day you delay is a day your competitors gain ground. The market leaders of tomorrow are those who recognize opportunity today and act decisively.

Don't let fear of the unknown hold you back. The risks of inaction far outweigh the challenges of moving forward. Your future self will thank you for taking this crucial step today.`

	persuasiveConclusion = `The choice is yours. You can continue with the status quo and watch from the sidelines, or you can take action and position yourself at the forefront of the {{topic}} revolution. The future belongs to those who dare to seize it.`
)
